package snapshot

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/danish45007/velocitybloom"
)

// WriteFile writes a snapshot of src to filename, replacing any existing file.
func WriteFile(filename string, src Source) error {
	data := Marshal(src)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	// write the snapshot size followed by the snapshot data.
	if err := binary.Write(file, binary.LittleEndian, int64(len(data))); err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		return err
	}
	if err := file.Sync(); err != nil {
		return err
	}

	logger().Debug("snapshot written", "file", filename, "bits", src.Bits(), "size", len(data))
	return nil
}

// ReadFile loads a snapshot written by WriteFile.
func ReadFile[T velocitybloom.ByteView](filename string) (*velocitybloom.Filter[T], error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	var size int64
	if err := binary.Read(file, binary.LittleEndian, &size); err != nil {
		return nil, fmt.Errorf("%w: reading size: %w", ErrCorruptSnapshot, err)
	}
	// the size prefix itself is 8 bytes and the snapshot fills the rest.
	if size < 0 || size != info.Size()-8 {
		return nil, fmt.Errorf("%w: size %d does not match file", ErrCorruptSnapshot, size)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(file, data); err != nil {
		return nil, fmt.Errorf("%w: reading data: %w", ErrCorruptSnapshot, err)
	}

	f, err := Unmarshal[T](data)
	if err != nil {
		logger().Warn("snapshot rejected", "file", filename, "error", err)
		return nil, err
	}
	logger().Debug("snapshot read", "file", filename, "bits", f.Bits())
	return f, nil
}

func logger() *slog.Logger {
	return slog.Default().With("component", "snapshot")
}
