package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"sealgram/internal/domain"
)

const (
	idFile           = "identity.enc"
	participantsFile = "participants.json" // map[string]domain.Participant
	messagesFile     = "messages.json"     // map[string]domain.StoredMessage
	linkSessionFile  = "link_session.json"
)

// FileStore keeps identity, directory, message and link-session state
// on disk under one home directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) *FileStore { return &FileStore{dir: dir} }

// ---------- Identity ----------

func (s *FileStore) SaveIdentity(passphrase string, id domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(id)
	if err != nil {
		return err
	}
	N, r, p := scryptParamsDefault()
	blob, err := encryptKeystore(passphrase, raw, N, r, p)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, idFile), blob, 0o600)
}

func (s *FileStore) LoadIdentity(passphrase string) (domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := os.ReadFile(filepath.Join(s.dir, idFile))
	if err != nil {
		return domain.Identity{}, err
	}
	raw, err := decryptKeystore(passphrase, blob)
	if err != nil {
		return domain.Identity{}, err
	}
	var id domain.Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		return domain.Identity{}, err
	}
	return id, nil
}

// ---------- Participant directory ----------

func (s *FileStore) Register(p domain.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" || p.Public.IsZero() {
		return fmt.Errorf("participant %q: %w", p.ID, domain.ErrMissingKeyMaterial)
	}
	m := make(map[string]domain.Participant)
	if err := readJSON(filepath.Join(s.dir, participantsFile), &m); err != nil {
		return err
	}
	m[p.ID] = p
	return writeJSON(filepath.Join(s.dir, participantsFile), m, 0o600)
}

func (s *FileStore) Lookup(id string) (domain.Participant, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := make(map[string]domain.Participant)
	if err := readJSON(filepath.Join(s.dir, participantsFile), &m); err != nil {
		return domain.Participant{}, false, err
	}
	p, ok := m[id]
	return p, ok, nil
}

func (s *FileStore) List() ([]domain.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := make(map[string]domain.Participant)
	if err := readJSON(filepath.Join(s.dir, participantsFile), &m); err != nil {
		return nil, err
	}
	out := make([]domain.Participant, 0, len(m))
	for _, p := range m {
		out = append(out, p)
	}
	return out, nil
}

// ---------- Messages ----------

// SaveMessage persists a message, minting an ID when none is set, and
// returns the stored ID.
func (s *FileStore) SaveMessage(msg domain.StoredMessage) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	m := make(map[string]domain.StoredMessage)
	if err := readJSON(filepath.Join(s.dir, messagesFile), &m); err != nil {
		return "", err
	}
	m[msg.ID] = msg
	if err := writeJSON(filepath.Join(s.dir, messagesFile), m, 0o600); err != nil {
		return "", err
	}
	return msg.ID, nil
}

func (s *FileStore) LoadMessage(id string) (domain.StoredMessage, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := make(map[string]domain.StoredMessage)
	if err := readJSON(filepath.Join(s.dir, messagesFile), &m); err != nil {
		return domain.StoredMessage{}, false, err
	}
	msg, ok := m[id]
	return msg, ok, nil
}

func (s *FileStore) LoadForRecipient(id, recipientID string) (ciphertext, sealedKey, senderID string, ok bool, err error) {
	msg, found, err := s.LoadMessage(id)
	if err != nil || !found {
		return "", "", "", false, err
	}
	key, present := msg.EncryptedKeys[recipientID]
	if !present {
		return "", "", "", false, nil
	}
	return msg.Ciphertext, key, msg.SenderID, true, nil
}

// ---------- Link session ----------

// SaveLinkSession keeps the pending link attempt's ephemeral key pair
// between CLI invocations. The derived key is never written.
func (s *FileStore) SaveLinkSession(kp domain.KeyPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(filepath.Join(s.dir, linkSessionFile), kp, 0o600)
}

func (s *FileStore) LoadLinkSession() (domain.KeyPair, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kp domain.KeyPair
	path := filepath.Join(s.dir, linkSessionFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return kp, false, nil
	}
	if err := readJSON(path, &kp); err != nil {
		return kp, false, err
	}
	return kp, true, nil
}

func (s *FileStore) ClearLinkSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.dir, linkSessionFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
