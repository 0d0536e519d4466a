package notify

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"
)

// Handle is the daemon-assigned id of the last notification shown for a
// device, persisted across invocations so the next one can replace it
// in place instead of stacking a new popup.
type Handle struct {
	ID        uint32    `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store keeps notification handles in a small JSON file keyed by device
// name. The file is shared between concurrent invocations, so every
// read-modify-write runs under an exclusive advisory lock.
type Store struct {
	Path string
	TTL  time.Duration
}

// DefaultStatePath puts the handle state under the user cache directory.
func DefaultStatePath() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = filepath.Join(os.Getenv("HOME"), ".cache")
	}
	return filepath.Join(cacheDir, "lumen", "notify.json")
}

func NewStore(path string, ttl time.Duration) *Store {
	return &Store{Path: path, TTL: ttl}
}

// Update runs post while holding the lock. post receives the prior handle
// for the device (0 when absent or older than the TTL, since the daemon may
// have recycled the id by then) and returns the new handle, which is
// persisted before the lock is released. If post fails nothing is saved.
func (s *Store) Update(device string, post func(prior uint32) (uint32, error)) (uint32, error) {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return 0, err
	}

	lock, err := os.OpenFile(s.Path+".lock", os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return 0, err
	}
	defer lock.Close()

	if err := unix.Flock(int(lock.Fd()), unix.LOCK_EX); err != nil {
		return 0, err
	}
	defer unix.Flock(int(lock.Fd()), unix.LOCK_UN)

	handles := s.load()

	var prior uint32
	if h, ok := handles[device]; ok && time.Since(h.UpdatedAt) <= s.TTL {
		prior = h.ID
	}

	id, err := post(prior)
	if err != nil {
		return 0, err
	}

	handles[device] = Handle{ID: id, UpdatedAt: time.Now()}
	if err := s.save(handles); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) load() map[string]Handle {
	handles := make(map[string]Handle)
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return handles
	}
	if err := json.Unmarshal(data, &handles); err != nil {
		// Corrupt state is not worth failing a brightness change over.
		return make(map[string]Handle)
	}
	return handles
}

func (s *Store) save(handles map[string]Handle) error {
	data, err := json.MarshalIndent(handles, "", "  ")
	if err != nil {
		return err
	}

	// Replace atomically so readers never see a half-written file.
	tmp := filepath.Join(filepath.Dir(s.Path), "notify."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}
