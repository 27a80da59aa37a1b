package persist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveRoundTrip(t *testing.T) {
	in := SaveData{IsInfiniteUnlocked: true, WaveRecord: 7}

	out, err := DecodeSave(in.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out != in {
		t.Errorf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"wrong magic", []byte("XXXX\x01\x00\x01\x00\x00\x00\x00\x00\x00\x00\x00")},
		{"truncated", SaveData{WaveRecord: 3}.Encode()[:6]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeSave(tt.data); err == nil {
				t.Error("expected decode error")
			}
		})
	}
}

func TestOpenMissingFileWritesDefault(t *testing.T) {
	dir := t.TempDir()

	st := Open(dir)
	if st.Data != (SaveData{}) {
		t.Errorf("expected default record, got %+v", st.Data)
	}

	// The default must have been written back to disk.
	raw, err := os.ReadFile(filepath.Join(dir, SaveFileName))
	if err != nil {
		t.Fatalf("default save not written: %v", err)
	}
	data, err := DecodeSave(raw)
	if err != nil {
		t.Fatalf("written default unreadable: %v", err)
	}
	if data != (SaveData{}) {
		t.Errorf("expected zero record on disk, got %+v", data)
	}
}

func TestRecordWavePersists(t *testing.T) {
	dir := t.TempDir()
	st := Open(dir)

	if !st.RecordWave(7) {
		t.Error("first record should persist")
	}
	if st.RecordWave(5) {
		t.Error("lower wave must not overwrite the record")
	}

	again := Open(dir)
	if again.Data.WaveRecord != 7 {
		t.Errorf("expected persisted record 7, got %d", again.Data.WaveRecord)
	}
}

func TestUnlockInfinitePersists(t *testing.T) {
	dir := t.TempDir()
	st := Open(dir)
	st.UnlockInfinite()

	again := Open(dir)
	if !again.Data.IsInfiniteUnlocked {
		t.Error("unlock should persist across opens")
	}
}

func TestOpenCorruptFileStartsFresh(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, SaveFileName), []byte("garbage"), 0o644)

	st := Open(dir)
	if st.Data != (SaveData{}) {
		t.Errorf("expected default on corrupt save, got %+v", st.Data)
	}
}
