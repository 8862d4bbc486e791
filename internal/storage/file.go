package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/yourname/timebalance/internal"
)

// FileStorage keeps every user document in memory and writes them all to a
// single JSON file. Writes are batched by a background worker.
type FileStorage struct {
	documents    map[string]json.RawMessage // userKey -> encoded UserDocument
	mu           sync.RWMutex
	writeMu      sync.Mutex
	dirty        bool
	dataFile     string
	saveChan     chan struct{}
	shutdownChan chan struct{}
	workerDone   chan struct{}
	saveDelay    time.Duration
	closeOnce    sync.Once
	logger       internal.Logger
}

func NewFileStorage(dataFile string, logger internal.Logger) (*FileStorage, error) {
	return newFileStorage(dataFile, 500*time.Millisecond, logger)
}

func newFileStorage(dataFile string, saveDelay time.Duration, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		documents:    make(map[string]json.RawMessage),
		dataFile:     dataFile,
		saveChan:     make(chan struct{}, 1),
		shutdownChan: make(chan struct{}),
		workerDone:   make(chan struct{}),
		saveDelay:    saveDelay,
		logger:       logger,
	}

	if err := s.loadDocuments(); err != nil {
		logger.Errorf("storage: failed to load documents: %v", err)
		return nil, err
	}

	go s.saveWorker()

	return s, nil
}

func (s *FileStorage) loadDocuments() error {
	file, err := os.Open(s.dataFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var docs map[string]json.RawMessage
	if err := json.NewDecoder(file).Decode(&docs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		// An unreadable file is treated as holding no data; the next
		// write replaces it.
		s.logger.Warnf("storage: ignoring unreadable data file %s: %v", s.dataFile, err)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range docs {
		s.documents[k] = v
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveDocuments() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	snapshot := make(map[string]json.RawMessage, len(s.documents))
	for k, v := range s.documents {
		snapshot[k] = v
	}
	s.dirty = false
	s.mu.Unlock()

	if err := atomicWriteFileJSON(s.dataFile, snapshot); err != nil {
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *FileStorage) saveWorker() {
	defer close(s.workerDone)
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.saveDocuments(); err != nil {
				s.logger.Errorf("storage: error saving documents: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

// Close stops the worker and flushes pending documents synchronously.
func (s *FileStorage) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.shutdownChan)
		<-s.workerDone
		err = s.saveDocuments()
	})
	return err
}

// --- DocumentStore ---
func (s *FileStorage) Get(ctx context.Context, userKey string) (*internal.UserDocument, error) {
	s.mu.RLock()
	raw, ok := s.documents[userKey]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decodeDocument(raw)
}

func (s *FileStorage) Set(ctx context.Context, userKey string, doc *internal.UserDocument) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.documents[userKey] = data
	s.dirty = true
	s.mu.Unlock()

	select {
	case s.saveChan <- struct{}{}:
	default:
	}
	return nil
}

// --- Compile-time assertions ---
var _ DocumentStore = (*FileStorage)(nil)
