package tree

import (
	"sync"

	"github.com/cosmos/iavl"
	dbm "github.com/tendermint/tm-db"
)

type ReadOnlyTree interface {
	Get(key []byte) (index int64, value []byte)
	Version() int64
	Hash() []byte
	Iterate(fn func(key []byte, value []byte) bool) (stopped bool)
}

// Committer is a keeper that flushes its dirty objects into the tree and
// repoints its reads at the newly saved version.
type Committer interface {
	Commit(db *iavl.MutableTree, version int64) error
	SetImmutableTree(immutableTree *iavl.ImmutableTree)
}

type MTree interface {
	ReadOnlyTree
	KeepLastHeight() int64
	AvailableVersions() []int
	Set(key, value []byte) bool
	Remove(key []byte) ([]byte, bool)
	LoadVersion(targetVersion int64) (int64, error)
	LazyLoadVersion(targetVersion int64) (int64, error)
	SaveVersion() ([]byte, int64, error)
	Commit(committers ...Committer) ([]byte, int64, error)
	DeleteVersion(version int64) error
	DeleteVersionsRange(from, to int64) error
	GetLastImmutable() *iavl.ImmutableTree
	GetImmutableAtHeight(version int64) (*iavl.ImmutableTree, error)
	GlobalLock()
	GlobalUnlock()
}

// NewMutableTree opens the versioned state tree. Height zero opens an
// empty tree positioned at initialVersion; a non-zero height loads that
// version for overwriting.
func NewMutableTree(height uint64, db dbm.DB, cacheSize int, initialVersion uint64) (MTree, error) {
	tree, err := iavl.NewMutableTreeWithOpts(db, cacheSize, &iavl.Options{InitialVersion: initialVersion})
	if err != nil {
		return nil, err
	}

	if height != 0 {
		if _, err := tree.LoadVersionForOverwriting(int64(height)); err != nil {
			return nil, err
		}
	}

	return &mutableTree{tree: tree}, nil
}

// NewImmutableTree returns a read-only handle positioned at height.
// Warning: returns the MTree interface, but callers should only use
// ReadOnlyTree.
func NewImmutableTree(height uint64, db dbm.DB) (MTree, error) {
	tree, err := NewMutableTree(0, db, 1024, 0)
	if err != nil {
		return nil, err
	}
	if _, err := tree.LazyLoadVersion(int64(height)); err != nil {
		return nil, err
	}
	return tree, nil
}

type mutableTree struct {
	tree *iavl.MutableTree
	lock sync.RWMutex
	sync.Mutex
}

func (t *mutableTree) GlobalLock() {
	t.Lock()
}

func (t *mutableTree) GlobalUnlock() {
	t.Unlock()
}

// Commit flushes every committer into the working tree, saves a version
// and repoints the committers at it.
func (t *mutableTree) Commit(committers ...Committer) ([]byte, int64, error) {
	t.GlobalLock()
	defer t.GlobalUnlock()

	version := t.Version() + 1
	for _, committer := range committers {
		if err := committer.Commit(t.tree, version); err != nil {
			return nil, 0, err
		}
	}

	hash, version, err := t.SaveVersion()
	if err != nil {
		return nil, 0, err
	}

	immutable := t.GetLastImmutable()
	for _, committer := range committers {
		committer.SetImmutableTree(immutable)
	}

	return hash, version, nil
}

func (t *mutableTree) GetImmutableAtHeight(version int64) (*iavl.ImmutableTree, error) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.tree.GetImmutable(version)
}

// GetLastImmutable returns the last saved version, or the working tree
// when nothing has been saved yet.
func (t *mutableTree) GetLastImmutable() *iavl.ImmutableTree {
	t.lock.RLock()
	defer t.lock.RUnlock()

	immutable, err := t.tree.GetImmutable(t.tree.Version())
	if err != nil {
		return t.tree.ImmutableTree
	}

	return immutable
}

func (t *mutableTree) Iterate(fn func(key []byte, value []byte) bool) (stopped bool) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.tree.Iterate(fn)
}

func (t *mutableTree) Hash() []byte {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.tree.Hash()
}

func (t *mutableTree) Version() int64 {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.tree.Version()
}

func (t *mutableTree) Get(key []byte) (index int64, value []byte) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.tree.Get(key)
}

func (t *mutableTree) Set(key, value []byte) bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.tree.Set(key, value)
}

func (t *mutableTree) Remove(key []byte) ([]byte, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.tree.Remove(key)
}

func (t *mutableTree) LoadVersion(targetVersion int64) (int64, error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.tree.LoadVersion(targetVersion)
}

func (t *mutableTree) LazyLoadVersion(targetVersion int64) (int64, error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.tree.LazyLoadVersion(targetVersion)
}

// Callers must hold GlobalLock.
func (t *mutableTree) SaveVersion() ([]byte, int64, error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.tree.SaveVersion()
}

// Callers must hold GlobalLock.
func (t *mutableTree) DeleteVersionsRange(from, to int64) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	var existsVersions = make([]int64, 0, to-from)
	for i := from; i < to; i++ {
		if t.tree.VersionExists(i) {
			existsVersions = append(existsVersions, i)
		}
	}
	return t.tree.DeleteVersions(existsVersions...)
}

func (t *mutableTree) DeleteVersion(version int64) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if !t.tree.VersionExists(version) {
		return nil
	}

	return t.tree.DeleteVersion(version)
}

func (t *mutableTree) KeepLastHeight() int64 {
	t.lock.RLock()
	defer t.lock.RUnlock()

	versions := t.tree.AvailableVersions()
	prev := 1
	for _, version := range versions {
		if version-prev == 1 {
			break
		}
		prev = version
	}

	return int64(prev)
}

func (t *mutableTree) AvailableVersions() []int {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.tree.AvailableVersions()
}
