// Package persist reads and writes the little binary save file. Policy is
// read-or-default: a missing or unreadable save yields the zero record and
// gets rewritten, so first launch and corrupted saves behave the same.
package persist

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mirafall/strafe/engine/core"
)

// SaveFileName is fixed under the asset base path.
const SaveFileName = "save.dat"

var saveMagic = [4]byte{'S', 'S', 'A', 'V'}

const saveVersion uint16 = 1

// SaveData is the persisted player record.
type SaveData struct {
	IsInfiniteUnlocked bool
	WaveRecord         uint64
}

// Encode serializes the record, little endian with a magic and version
// header.
func (s SaveData) Encode() []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, saveMagic)
	binary.Write(&buf, binary.LittleEndian, saveVersion)
	var unlocked uint8
	if s.IsInfiniteUnlocked {
		unlocked = 1
	}
	binary.Write(&buf, binary.LittleEndian, unlocked)
	binary.Write(&buf, binary.LittleEndian, s.WaveRecord)
	return buf.Bytes()
}

// DecodeSave parses an encoded record.
func DecodeSave(data []byte) (SaveData, error) {
	r := bytes.NewReader(data)
	var magic [4]byte
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return SaveData{}, fmt.Errorf("save header: %w", err)
	}
	if magic != saveMagic {
		return SaveData{}, fmt.Errorf("not a save file (magic %q)", magic)
	}
	var version uint16
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return SaveData{}, fmt.Errorf("save header: %w", err)
	}
	if version != saveVersion {
		return SaveData{}, fmt.Errorf("unsupported save version %d", version)
	}
	var unlocked uint8
	if err := binary.Read(r, binary.LittleEndian, &unlocked); err != nil {
		return SaveData{}, fmt.Errorf("save body: %w", err)
	}
	var record uint64
	if err := binary.Read(r, binary.LittleEndian, &record); err != nil {
		return SaveData{}, fmt.Errorf("save body: %w", err)
	}
	return SaveData{IsInfiniteUnlocked: unlocked != 0, WaveRecord: record}, nil
}

// Store owns the save file location and the in-memory record.
type Store struct {
	path string
	Data SaveData
}

// Open loads the save under basePath, falling back to the default record
// and writing it to disk when the file is missing or unreadable.
func Open(basePath string) *Store {
	st := &Store{path: filepath.Join(basePath, SaveFileName)}

	raw, err := os.ReadFile(st.path)
	if err == nil {
		if data, derr := DecodeSave(raw); derr == nil {
			st.Data = data
			return st
		} else {
			core.LogWarn("save file %s unreadable, starting fresh: %s", st.path, derr.Error())
		}
	}

	st.Data = SaveData{}
	if werr := st.Write(); werr != nil {
		core.LogWarn("could not write default save: %s", werr.Error())
	}
	return st
}

// Write flushes the current record to disk.
func (st *Store) Write() error {
	return os.WriteFile(st.path, st.Data.Encode(), 0o644)
}

// RecordWave persists a new wave record if it beats the stored one.
// Returns true when the record changed.
func (st *Store) RecordWave(wave uint64) bool {
	if wave <= st.Data.WaveRecord {
		return false
	}
	st.Data.WaveRecord = wave
	if err := st.Write(); err != nil {
		core.LogError("persisting wave record: %s", err.Error())
	}
	return true
}

// UnlockInfinite persists the infinite-mode unlock.
func (st *Store) UnlockInfinite() {
	if st.Data.IsInfiniteUnlocked {
		return
	}
	st.Data.IsInfiniteUnlocked = true
	if err := st.Write(); err != nil {
		core.LogError("persisting unlock: %s", err.Error())
	}
}
