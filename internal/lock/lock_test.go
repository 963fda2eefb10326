package lock

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Ning0612/fdname/internal/domain"
	"github.com/Ning0612/fdname/internal/testutil"
)

// writeHolder plants a lock file as another holder would have written it
func writeHolder(t *testing.T, l *RootLock, info *LockInfo) {
	t.Helper()
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		t.Fatalf("failed to encode lock info: %v", err)
	}
	if err := os.WriteFile(l.Path(), data, 0644); err != nil {
		t.Fatalf("failed to write lock file: %v", err)
	}
}

func TestNewRootLock(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	lock, err := NewRootLock(dir, "/data/photos")
	if err != nil {
		t.Fatalf("NewRootLock failed: %v", err)
	}

	expectedPath := filepath.Join(dir, FileName("/data/photos"))
	if lock.Path() != expectedPath {
		t.Errorf("expected lock path %s, got %s", expectedPath, lock.Path())
	}

	if lock.staleTimeout != DefaultStaleTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultStaleTimeout, lock.staleTimeout)
	}
}

func TestFileName(t *testing.T) {
	a := FileName("/data/a")
	if a != FileName("/data/a/") {
		t.Error("trailing separator should not change the lock name")
	}
	if a == FileName("/data/b") {
		t.Error("different roots should use different lock files")
	}
	if !strings.HasPrefix(a, "fdname-") || !strings.HasSuffix(a, ".lock") {
		t.Errorf("unexpected lock name %s", a)
	}
}

func TestAcquireRelease(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	lock, err := NewRootLock(dir, "/data/photos")
	if err != nil {
		t.Fatalf("NewRootLock failed: %v", err)
	}

	if err := lock.Acquire(); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	if _, err := os.Stat(lock.Path()); os.IsNotExist(err) {
		t.Error("lock file does not exist after acquire")
	}
	if !lock.IsLocked() {
		t.Error("lock should be held")
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	if _, err := os.Stat(lock.Path()); !os.IsNotExist(err) {
		t.Error("lock file still exists after release")
	}
	if lock.IsLocked() {
		t.Error("lock should not be held after release")
	}
}

func TestAcquireTwice_SameInstance(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	lock, _ := NewRootLock(dir, "/data")

	if err := lock.Acquire(); err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}
	if err := lock.Acquire(); err != nil {
		t.Fatalf("second Acquire failed: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if lock.IsLocked() {
		t.Error("lock should be released")
	}
}

func TestDifferentRootsDoNotContend(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	a, _ := NewRootLock(dir, "/data/a")
	b, _ := NewRootLock(dir, "/data/b")

	if err := a.Acquire(); err != nil {
		t.Fatalf("Acquire a failed: %v", err)
	}
	defer a.Release()

	if err := b.Acquire(); err != nil {
		t.Fatalf("Acquire b failed: %v", err)
	}
	defer b.Release()
}

func TestConcurrentAcquire(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	const goroutines = 10
	var wg sync.WaitGroup
	var start sync.WaitGroup
	start.Add(1)
	acquired := make([]bool, goroutines)
	errs := make([]error, goroutines)
	locks := make([]*RootLock, goroutines)

	for i := 0; i < goroutines; i++ {
		lock, err := NewRootLock(dir, "/data")
		if err != nil {
			t.Fatalf("NewRootLock failed: %v", err)
		}
		locks[i] = lock
	}

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			start.Wait()
			if err := locks[idx].Acquire(); err != nil {
				errs[idx] = err
				return
			}
			acquired[idx] = true
		}(i)
	}
	start.Done()
	wg.Wait()

	acquireCount := 0
	lockErrorCount := 0
	for i := 0; i < goroutines; i++ {
		if acquired[i] {
			acquireCount++
			locks[i].Release()
		}
		if errs[i] != nil && IsLockError(errs[i]) {
			lockErrorCount++
		}
	}

	if acquireCount != 1 {
		t.Errorf("expected exactly 1 acquire, got %d", acquireCount)
	}
	if lockErrorCount != goroutines-1 {
		t.Errorf("expected %d lock errors, got %d", goroutines-1, lockErrorCount)
	}
}

func TestGetHolder(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	lock, _ := NewRootLock(dir, "/data/photos")

	if _, err := lock.GetHolder(); err == nil {
		t.Error("expected error when no lock is held")
	}

	if err := lock.Acquire(); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer lock.Release()

	holder, err := lock.GetHolder()
	if err != nil {
		t.Fatalf("GetHolder failed: %v", err)
	}

	if holder.PID != os.Getpid() {
		t.Errorf("expected PID %d, got %d", os.Getpid(), holder.PID)
	}
	hostname, _ := os.Hostname()
	if holder.Hostname != hostname {
		t.Errorf("expected hostname %s, got %s", hostname, holder.Hostname)
	}
	if holder.Root != filepath.Clean("/data/photos") {
		t.Errorf("expected root /data/photos, got %s", holder.Root)
	}
	if time.Since(holder.StartTime) > time.Second {
		t.Error("start time should be recent")
	}
}

func TestForceRelease(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	lock, _ := NewRootLock(dir, "/data")
	lock.Acquire()

	if err := lock.ForceRelease(); err != nil {
		t.Fatalf("ForceRelease failed: %v", err)
	}
	if _, err := os.Stat(lock.Path()); !os.IsNotExist(err) {
		t.Error("lock file should be removed after force release")
	}
	if lock.IsLocked() {
		t.Error("lock should not be held after force release")
	}
}

func TestStaleDetection_ProcessDead(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	lock, _ := NewRootLock(dir, "/data")

	hostname, _ := os.Hostname()
	staleInfo := &LockInfo{
		PID:       999999, // unlikely to exist
		Hostname:  hostname,
		StartTime: time.Now().Add(-time.Hour),
		Root:      "/data",
	}
	writeHolder(t, lock, staleInfo)

	if err := lock.Acquire(); err != nil {
		t.Fatalf("should acquire stale lock: %v", err)
	}
	defer lock.Release()

	holder, err := lock.GetHolder()
	if err != nil {
		t.Fatalf("GetHolder failed: %v", err)
	}
	if holder.PID != os.Getpid() {
		t.Error("expected current process to be holder")
	}
}

func TestStaleDetection_LongRunning(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	lock, _ := NewRootLock(dir, "/data")
	lock.SetStaleTimeout(100 * time.Millisecond)

	if err := lock.Acquire(); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer lock.Release()

	time.Sleep(200 * time.Millisecond)

	// The holder is alive, so the timeout does not apply
	if !lock.IsLocked() {
		t.Error("long-running lock should not be considered stale")
	}

	lock2, _ := NewRootLock(dir, "/data")
	err := lock2.Acquire()
	if err == nil {
		lock2.Release()
		t.Fatal("should not acquire lock held by living process")
	}
	if !errors.Is(err, domain.ErrRenameInProgress) {
		t.Errorf("expected ErrRenameInProgress, got: %v", err)
	}
}

func TestStaleDetection_DifferentHost(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	lock, _ := NewRootLock(dir, "/data")
	lock.SetStaleTimeout(100 * time.Millisecond)

	foreignInfo := &LockInfo{
		PID:       12345,
		Hostname:  "foreign-host-" + testutil.RandomString(8),
		StartTime: time.Now().Add(-time.Hour),
		Root:      "/data",
	}
	writeHolder(t, lock, foreignInfo)

	if err := lock.Acquire(); err != nil {
		t.Fatalf("should acquire stale foreign lock: %v", err)
	}
	defer lock.Release()
}

func TestStaleDetection_ZeroPID(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	lock, _ := NewRootLock(dir, "/data")
	hostname, _ := os.Hostname()

	if !lock.isStale(&LockInfo{PID: 0, Hostname: hostname, StartTime: time.Now()}) {
		t.Error("a zero pid should never count as alive")
	}
}

func TestLockError(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	lock1, _ := NewRootLock(dir, "/data")
	lock2, _ := NewRootLock(dir, "/data")

	lock1.Acquire()
	defer lock1.Release()

	err := lock2.Acquire()
	if err == nil {
		t.Fatal("expected error when lock is held")
	}
	if !IsLockError(err) {
		t.Errorf("expected LockError, got: %T", err)
	}
	if !errors.Is(err, domain.ErrRenameInProgress) {
		t.Errorf("expected ErrRenameInProgress, got: %v", err)
	}
	if !strings.Contains(err.Error(), "PID") {
		t.Errorf("error message should name the holder: %s", err)
	}
}

func TestRelease_NotHeld(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	lock, _ := NewRootLock(dir, "/data")
	if err := lock.Release(); err != nil {
		t.Errorf("Release without Acquire should be a no-op, got %v", err)
	}
}

func TestRelease_Stolen(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	lock, _ := NewRootLock(dir, "/data")
	if err := lock.Acquire(); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	// Another holder replaced the file
	other := &LockInfo{PID: os.Getpid(), Hostname: "elsewhere", StartTime: time.Now(), Root: "/data"}
	writeHolder(t, lock, other)

	if err := lock.Release(); err == nil {
		t.Error("expected error when the lock was stolen")
	}
	if _, err := os.Stat(lock.Path()); err != nil {
		t.Error("a stolen lock file must not be removed")
	}
}
