package tabletop

import (
	"bytes"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func WithStack(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(stackTracer); !ok {
		return errors.WithStack(err)
	}
	return err
}

func StackTrace(err error) string {
	buf := &bytes.Buffer{}
	if err, ok := err.(stackTracer); ok {
		for _, f := range err.StackTrace() {
			fmt.Fprintf(buf, "%+v\n", f)
		}
	}
	return buf.String()
}

// SyncMap is a map guarded by a RWMutex. Clone returns a point in time copy
// that can be iterated without holding the lock.
type SyncMap[K comparable, V comparable] struct {
	m     map[K]V
	mutex sync.RWMutex
}

func NewSyncMap[K comparable, V comparable]() *SyncMap[K, V] {
	return &SyncMap[K, V]{
		m: map[K]V{},
	}
}

func (s *SyncMap[K, V]) Clone() map[K]V {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	result := make(map[K]V, len(s.m))
	for k, v := range s.m {
		result[k] = v
	}
	return result
}

func (s *SyncMap[K, V]) GetHas(key K) (V, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	v, found := s.m[key]
	return v, found
}

// SetIfAbsent stores value under key unless the key is already present.
func (s *SyncMap[K, V]) SetIfAbsent(key K, value V) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, found := s.m[key]; found {
		return false
	}
	s.m[key] = value
	return true
}

// DelIf removes key only if it currently maps to value.
func (s *SyncMap[K, V]) DelIf(key K, value V) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if current, found := s.m[key]; found && current == value {
		delete(s.m, key)
		return true
	}
	return false
}

var lastUniqueID uint64

func Increment(prevPointer *uint64) uint64 {
	next := uint64(0)
	for {
		next = uint64(time.Now().UnixNano())
		previous := atomic.LoadUint64(prevPointer)
		if next > previous && atomic.CompareAndSwapUint64(prevPointer, previous, next) {
			break
		}
	}
	return next
}

// NextUniqueID returns a process wide, strictly increasing identifier.
func NextUniqueID() string {
	return strconv.FormatUint(Increment(&lastUniqueID), 36)
}
