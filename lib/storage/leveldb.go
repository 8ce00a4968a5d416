package storage

import (
	"bytes"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	leveldbIterator "github.com/syndtr/goleveldb/leveldb/iterator"
	leveldbOpt "github.com/syndtr/goleveldb/leveldb/opt"
	leveldbStorage "github.com/syndtr/goleveldb/leveldb/storage"
	leveldbUtil "github.com/syndtr/goleveldb/leveldb/util"

	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/errors"
)

// LevelDBCore is satisfied by both `*leveldb.DB` and `*leveldb.Transaction`,
// so the same backend code reads and writes inside or outside a transaction.
type LevelDBCore interface {
	Has([]byte, *leveldbOpt.ReadOptions) (bool, error)
	Get([]byte, *leveldbOpt.ReadOptions) ([]byte, error)
	NewIterator(*leveldbUtil.Range, *leveldbOpt.ReadOptions) leveldbIterator.Iterator
	Put([]byte, []byte, *leveldbOpt.WriteOptions) error
	Write(*leveldb.Batch, *leveldbOpt.WriteOptions) error
	Delete([]byte, *leveldbOpt.WriteOptions) error
}

type LevelDBBackend struct {
	DB *leveldb.DB

	Core LevelDBCore
}

func setLevelDBCoreError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := err.(*errors.Error); ok {
		return err
	}

	return errors.StorageCoreError.Clone().SetData("error", err.Error())
}

func (st *LevelDBBackend) Init(config *Config) (err error) {
	var db *leveldb.DB

	switch config.Scheme {
	case "file":
		if db, err = leveldb.OpenFile(config.Path, nil); err != nil {
			return setLevelDBCoreError(err)
		}
	case "memory":
		if db, err = leveldb.Open(leveldbStorage.NewMemStorage(), nil); err != nil {
			return setLevelDBCoreError(err)
		}
	default:
		return setLevelDBCoreError(fmt.Errorf("unsupported storage scheme: '%s'", config.Scheme))
	}

	st.DB = db
	st.Core = db

	return
}

func (st *LevelDBBackend) Close() error {
	return st.DB.Close()
}

func (st *LevelDBBackend) IsTransaction() bool {
	_, ok := st.Core.(*leveldb.Transaction)
	return ok
}

// OpenTransaction returns a backend whose writes are invisible outside of it
// until `Commit`. Only one transaction can be open at a time; the second
// `OpenTransaction` blocks.
func (st *LevelDBBackend) OpenTransaction() (*LevelDBBackend, error) {
	if st.IsTransaction() {
		return nil, setLevelDBCoreError(fmt.Errorf("this is already *leveldb.Transaction"))
	}

	transaction, err := st.DB.OpenTransaction()
	if err != nil {
		return nil, setLevelDBCoreError(err)
	}

	return &LevelDBBackend{
		DB:   st.DB,
		Core: transaction,
	}, nil
}

func (st *LevelDBBackend) Discard() error {
	ts, ok := st.Core.(*leveldb.Transaction)
	if !ok {
		return setLevelDBCoreError(fmt.Errorf("this is not *leveldb.Transaction"))
	}

	ts.Discard()
	return nil
}

func (st *LevelDBBackend) Commit() error {
	ts, ok := st.Core.(*leveldb.Transaction)
	if !ok {
		return setLevelDBCoreError(fmt.Errorf("this is not *leveldb.Transaction"))
	}

	return setLevelDBCoreError(ts.Commit())
}

func (st *LevelDBBackend) makeKey(key string) []byte {
	return []byte(key)
}

func (st *LevelDBBackend) Has(k string) (bool, error) {
	ok, err := st.Core.Has(st.makeKey(k), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return false, nil
		}
		return false, setLevelDBCoreError(err)
	}

	return ok, nil
}

func (st *LevelDBBackend) GetRaw(k string) (b []byte, err error) {
	b, err = st.Core.Get(st.makeKey(k), nil)
	if err == leveldb.ErrNotFound {
		return nil, errors.StorageRecordDoesNotExist
	}

	return b, setLevelDBCoreError(err)
}

func (st *LevelDBBackend) Get(k string, i interface{}) (err error) {
	var b []byte
	if b, err = st.GetRaw(k); err != nil {
		return
	}

	return setLevelDBCoreError(common.DecodeJSONValue(b, i))
}

func encodeValue(v interface{}) (encoded []byte, err error) {
	if serializable, ok := v.(common.Serializable); ok {
		encoded, err = serializable.Serialize()
	} else {
		encoded, err = common.EncodeJSONValue(v)
	}

	return encoded, setLevelDBCoreError(err)
}

// New stores `v` only when nothing exists at `k`.
func (st *LevelDBBackend) New(k string, v interface{}) (err error) {
	var encoded []byte
	if encoded, err = encodeValue(v); err != nil {
		return
	}

	var exists bool
	if exists, err = st.Has(k); err != nil {
		return
	} else if exists {
		return errors.StorageRecordAlreadyExists
	}

	return setLevelDBCoreError(st.Core.Put(st.makeKey(k), encoded, nil))
}

func (st *LevelDBBackend) News(vs ...Item) (err error) {
	if len(vs) < 1 {
		return setLevelDBCoreError(fmt.Errorf("empty values"))
	}

	batch := new(leveldb.Batch)
	for _, v := range vs {
		var exists bool
		if exists, err = st.Has(v.Key); err != nil {
			return
		} else if exists {
			return errors.StorageRecordAlreadyExists
		}

		var encoded []byte
		if encoded, err = encodeValue(v.Value); err != nil {
			return
		}
		batch.Put(st.makeKey(v.Key), encoded)
	}

	return setLevelDBCoreError(st.Core.Write(batch, nil))
}

// Set overwrites `k`, which must already exist.
func (st *LevelDBBackend) Set(k string, v interface{}) (err error) {
	var encoded []byte
	if encoded, err = encodeValue(v); err != nil {
		return
	}

	var exists bool
	if exists, err = st.Has(k); err != nil {
		return
	} else if !exists {
		return errors.StorageRecordDoesNotExist
	}

	return setLevelDBCoreError(st.Core.Put(st.makeKey(k), encoded, nil))
}

func (st *LevelDBBackend) Remove(k string) (err error) {
	var exists bool
	if exists, err = st.Has(k); err != nil {
		return
	} else if !exists {
		return errors.StorageRecordDoesNotExist
	}

	return setLevelDBCoreError(st.Core.Delete(st.makeKey(k), nil))
}

// GetIterator walks the keys under `prefix`. The first returned func yields
// items until it returns false; the second releases the iterator and is
// safe to call more than once.
func (st *LevelDBBackend) GetIterator(prefix string, option *ListOptions) (func() (IterItem, bool), func()) {
	if option == nil {
		option = &ListOptions{}
	}

	iter := st.Core.NewIterator(leveldbUtil.BytesPrefix(st.makeKey(prefix)), nil)

	var released bool
	release := func() {
		if !released {
			iter.Release()
			released = true
		}
	}

	var started bool
	move := func() bool {
		if started {
			if option.Reverse {
				return iter.Prev()
			}
			return iter.Next()
		}
		started = true

		if len(option.Cursor) < 1 {
			if option.Reverse {
				return iter.Last()
			}
			return iter.First()
		}

		found := iter.Seek(option.Cursor)
		if option.Reverse {
			if !found {
				return iter.Last()
			}
			return iter.Prev()
		}
		if found && bytes.Equal(iter.Key(), option.Cursor) {
			return iter.Next()
		}
		return found
	}

	var n uint64
	return func() (IterItem, bool) {
		if released {
			return IterItem{}, false
		}
		if option.Limit > 0 && n >= option.Limit {
			release()
			return IterItem{}, false
		}
		if !move() {
			release()
			return IterItem{}, false
		}

		n++
		return IterItem{
			N:     n,
			Key:   append([]byte{}, iter.Key()...),
			Value: append([]byte{}, iter.Value()...),
		}, true
	}, release
}
