package export

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// folderLock aynı çıktı dizinine eşzamanlı export yapılmasını engeller.
// Kilit dosyası çıktı dizinine değil geçici dizine yazılır ve silinmez;
// silinirse bekleyen bir süreç eski inode'u kilitleyebilir.
type folderLock struct {
	fl *flock.Flock
}

func lockPath(lockDir, outputFolder string) string {
	abs, err := filepath.Abs(outputFolder)
	if err != nil {
		abs = outputFolder
	}
	sum := sha1.Sum([]byte(abs))
	return filepath.Join(lockDir, "gifclip-"+hex.EncodeToString(sum[:])[:16]+".lock")
}

func acquireFolderLock(lockDir, outputFolder string) (*folderLock, error) {
	if lockDir == "" {
		lockDir = os.TempDir()
	}
	fl := flock.New(lockPath(lockDir, outputFolder))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("export kilidi alınamadı: %w", err)
	}
	if !locked {
		return nil, ErrExportInProgress
	}
	return &folderLock{fl: fl}, nil
}

func (l *folderLock) release() {
	if l == nil || l.fl == nil {
		return
	}
	_ = l.fl.Unlock()
}
