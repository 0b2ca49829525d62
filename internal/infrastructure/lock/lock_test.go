package lock

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sangkips/inventra-api/internal/mocks"

	"github.com/sangkips/inventra-api/pkg/apperror"
)

func TestKeys(t *testing.T) {
	p := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	w := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	assert.Equal(t, "customer:"+p.String(), CustomerKey(p))
	assert.Equal(t, "supplier:"+p.String(), SupplierKey(p))
	assert.Equal(t, "stock:"+p.String()+":"+w.String(), StockKey(p, w))
}

func TestLocalLocker_MutualExclusion(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
		counter int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(ctx, "customer:1")
			if !assert.NoError(t, err) {
				return
			}
			defer release()

			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			counter++
			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 20, counter)
	assert.Equal(t, 0, l.size())
}

func TestLocalLocker_IndependentKeys(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	releaseA, err := l.Acquire(ctx, "a")
	require.NoError(t, err)
	defer releaseA()

	done := make(chan struct{})
	go func() {
		releaseB, err := l.Acquire(ctx, "b")
		assert.NoError(t, err)
		releaseB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on b blocked behind a")
	}
}

func TestLocalLocker_ContextCancelled(t *testing.T) {
	l := NewLocalLocker()

	release, err := l.Acquire(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = l.Acquire(ctx, "k")
	assert.ErrorIs(t, err, apperror.ErrLockNotObtained)

	release()
	release() // second call is a no-op
	assert.Equal(t, 0, l.size())
}

func TestAcquireAll(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	release, err := AcquireAll(ctx, l, "stock:b", "stock:a", "stock:b")
	require.NoError(t, err)
	assert.Equal(t, 2, l.size())

	// both keys are held
	short, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(short, "stock:a")
	assert.Error(t, err)

	release()
	assert.Equal(t, 0, l.size())
}

func TestAcquireAll_ReleasesOnFailure(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	holder, err := l.Acquire(ctx, "z")
	require.NoError(t, err)
	defer holder()

	short, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()

	_, err = AcquireAll(short, l, "a", "z")
	require.Error(t, err)

	// "a" was released when "z" failed
	release, err := l.Acquire(ctx, "a")
	require.NoError(t, err)
	release()
}

func TestAcquireAll_SortedOrderAndReverseRelease(t *testing.T) {
	ctrl := gomock.NewController(t)
	locker := mocks.NewMockLocker(ctrl)
	ctx := context.Background()

	var released []string
	releaser := func(key string) func() {
		return func() { released = append(released, key) }
	}

	gomock.InOrder(
		locker.EXPECT().Acquire(ctx, "customer:1").Return(releaser("customer:1"), nil),
		locker.EXPECT().Acquire(ctx, "stock:1:2").Return(releaser("stock:1:2"), nil),
		locker.EXPECT().Acquire(ctx, "stock:9:2").Return(releaser("stock:9:2"), nil),
	)

	release, err := AcquireAll(ctx, locker, "stock:9:2", "customer:1", "stock:1:2", "customer:1")
	require.NoError(t, err)

	release()
	assert.Equal(t, []string{"stock:9:2", "stock:1:2", "customer:1"}, released)
}

func TestAcquireAll_PropagatesLockerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	locker := mocks.NewMockLocker(ctrl)
	ctx := context.Background()

	releasedA := false
	locker.EXPECT().Acquire(ctx, "a").Return(func() { releasedA = true }, nil)
	locker.EXPECT().Acquire(ctx, "b").Return(nil, apperror.ErrLockNotObtained)

	_, err := AcquireAll(ctx, locker, "b", "a")
	assert.ErrorIs(t, err, apperror.ErrLockNotObtained)
	assert.True(t, releasedA)
}

func TestRedisLocker(t *testing.T) {
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_ADDRESS not set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	l := NewRedisLocker(rdb, 5*time.Second, logrus.New())
	ctx := context.Background()
	key := "test:" + uuid.NewString()

	release, err := l.Acquire(ctx, key)
	require.NoError(t, err)

	short, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(short, key)
	assert.Error(t, err)

	release()

	release2, err := l.Acquire(ctx, key)
	require.NoError(t, err)
	release2()
}
