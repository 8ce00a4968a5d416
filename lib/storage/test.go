package storage

import "os"

func CleanDB(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return
	}

	os.RemoveAll(path)
}

func NewTestStorage() *LevelDBBackend {
	st, err := NewTestMemoryLevelDBBackend()
	if err != nil {
		panic(err)
	}

	return st
}

func NewTestMemoryLevelDBBackend() (*LevelDBBackend, error) {
	config, _ := NewConfigFromString("memory://")
	return NewStorage(config)
}
