package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/cyrup-ai/get.cyrup.ai/utils"
)

func testStorage(t *testing.T, engine string) {
	path := filepath.Join(t.TempDir(), "searchindex."+engine)
	db, err := OpenStorage(path, engine)
	utils.Expect(t, "<nil>", err)
	db.Close()

	db, err = OpenStorage(path, engine)
	utils.Expect(t, "<nil>", err)
	defer func() {
		walFile := db.WALName()
		db.Close()
		if walFile != "" {
			os.Remove(walFile)
		}
	}()

	utils.Expect(t, "<nil>", db.Set([]byte("key2"), []byte("value2")))
	utils.Expect(t, "<nil>", db.Set([]byte("key1"), []byte("value1")))
	utils.Expect(t, "<nil>", db.Set([]byte("key3"), []byte("value3")))

	buffer, err := db.Get([]byte("key1"))
	utils.Expect(t, "<nil>", err)
	utils.Expect(t, "value1", string(buffer))

	buffer, err = db.Get([]byte("missing"))
	utils.Expect(t, "<nil>", err)
	utils.Expect(t, "0", len(buffer))

	utils.Expect(t, "<nil>", db.Delete([]byte("key3")))

	var output string
	err = db.ForEach(func(k, v []byte) error {
		output += fmt.Sprintf("%s=%s ", k, v)
		return nil
	})
	utils.Expect(t, "<nil>", err)
	utils.Expect(t, "key1=value1 key2=value2 ", output)

	stop := errors.New("stop")
	count := 0
	err = db.ForEach(func(k, v []byte) error {
		count++
		return stop
	})
	utils.Expect(t, "stop", err)
	utils.Expect(t, "1", count)
}

func TestBoltStorage(t *testing.T) {
	testStorage(t, "bolt")
}

func TestKVStorage(t *testing.T) {
	testStorage(t, "kv")
}

func TestOpenStorageUnsupported(t *testing.T) {
	_, err := OpenStorage(filepath.Join(t.TempDir(), "db"), "leveldb")
	utils.Expect(t, "true", errors.Is(err, ErrUnsupportedEngine))
	utils.Expect(t, "[bolt kv]", SupportedEngines())
}

func TestOpenStorageDefault(t *testing.T) {
	db, err := OpenStorage(filepath.Join(t.TempDir(), "db"), "")
	utils.Expect(t, "<nil>", err)
	utils.Expect(t, "", db.WALName())
	db.Close()
}
