package future

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errTest  = errors.New("test error")
	errFirst = errors.New("first error")
)

func TestNew_Success(t *testing.T) {
	t.Parallel()

	fut, promise := New[int]()

	go func() {
		promise.Success(42)
	}()

	result, err := fut.Await()

	require.NoError(t, err)
	assert.Equal(t, 42, result)
}

func TestNew_Error(t *testing.T) {
	t.Parallel()

	fut, promise := New[int]()

	go func() {
		promise.Failure(errTest)
	}()

	result, err := fut.Await()

	require.Error(t, err)
	assert.Equal(t, errTest, err)
	assert.Equal(t, 0, result)
}

func TestPromise_FulfilledOnce(t *testing.T) {
	t.Parallel()

	fut, promise := New[string]()

	promise.Success("first")
	promise.Success("second")
	promise.Failure(errTest)

	assert.True(t, promise.Fulfilled())

	result, err := fut.Await()

	require.NoError(t, err)
	assert.Equal(t, "first", result)
}

func TestGo_Success(t *testing.T) {
	t.Parallel()

	fut := Go(func() (int, error) {
		return 42, nil
	})

	result, err := fut.Await()

	require.NoError(t, err)
	assert.Equal(t, 42, result)
}

func TestGo_Panic(t *testing.T) {
	t.Parallel()

	fut := Go(func() (int, error) {
		panic("test panic")
	})

	result, err := fut.Await()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "recovered from panic: test panic")
	assert.Contains(t, err.Error(), "stack trace:")
	assert.Equal(t, 0, result)
}

func TestGoContext_Success(t *testing.T) {
	t.Parallel()

	fut := GoContext(context.Background(), func(_ context.Context) (string, error) {
		return "hello", nil
	})

	result, err := fut.Await()

	require.NoError(t, err)
	assert.Equal(t, "hello", result)
}

func TestAwaitContext_Timeout(t *testing.T) {
	t.Parallel()

	fut, _ := New[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := fut.AwaitContext(ctx)

	require.Error(t, err)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDone(t *testing.T) {
	t.Parallel()

	fut, promise := New[int]()

	assert.False(t, fut.Done())

	promise.Success(1)

	assert.True(t, fut.Done())
}

func TestOnResult_BeforeFulfillment(t *testing.T) {
	t.Parallel()

	fut, promise := New[int]()

	var (
		wg       sync.WaitGroup
		got      int
		gotError error
	)

	wg.Add(1)

	fut.OnResult(func(value int, err error) {
		got = value
		gotError = err

		wg.Done()
	})

	promise.Success(7)
	wg.Wait()

	require.NoError(t, gotError)
	assert.Equal(t, 7, got)
}

func TestOnResult_AfterFulfillment(t *testing.T) {
	t.Parallel()

	fut, promise := New[int]()
	promise.Failure(errTest)

	var wg sync.WaitGroup

	wg.Add(1)

	var gotError error

	fut.OnResult(func(_ int, err error) {
		gotError = err

		wg.Done()
	})

	wg.Wait()

	require.ErrorIs(t, gotError, errTest)
}

func TestOnSuccessAndOnError(t *testing.T) {
	t.Parallel()

	okFut := Go(func() (int, error) { return 3, nil })
	badFut := Go(func() (int, error) { return 0, errTest })

	var wg sync.WaitGroup

	wg.Add(2)

	var (
		value    int
		gotError error
	)

	okFut.OnSuccess(func(v int) {
		value = v

		wg.Done()
	})

	badFut.OnError(func(err error) {
		gotError = err

		wg.Done()
	})

	wg.Wait()

	assert.Equal(t, 3, value)
	require.ErrorIs(t, gotError, errTest)
}

func TestAwaitAll_CollectsInOrder(t *testing.T) {
	t.Parallel()

	futA := Go(func() (int, error) {
		time.Sleep(20 * time.Millisecond)

		return 1, nil
	})
	futB := Go(func() (int, error) { return 2, nil })

	values, err := AwaitAll(context.Background(), futA, futB)

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, values)
}

func TestAwaitAll_FirstErrorWins(t *testing.T) {
	t.Parallel()

	futA := Go(func() (int, error) { return 0, errFirst })
	futB := Go(func() (int, error) { return 0, errTest })
	futC := Go(func() (int, error) { return 3, nil })

	_, err := AwaitAll(context.Background(), futA, futB, futC)

	require.ErrorIs(t, err, errFirst)
}

func TestAsyncWithError_Completes(t *testing.T) {
	t.Parallel()

	done := make(chan struct{})

	AsyncWithError(func() error {
		close(done)

		return nil
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("async function never ran")
	}
}
