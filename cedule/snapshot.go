package cedule

import (
	"encoding/json"
	"log"

	"cadastra/rdx"
)

// SnapshotKey is the durable slot holding the serialized board. The snapshot
// has no external consumers; it only needs to round-trip the Team shape.
const SnapshotKey = "cedule:board"

// SnapshotJSON serializes the day -> teams state.
func (s *Store) SnapshotJSON() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return json.Marshal(s.days)
}

// RestoreJSON replaces the board state with a previously taken snapshot.
func (s *Store) RestoreJSON(data []byte) error {
	days := make(map[string][]*Team)
	if err := json.Unmarshal(data, &days); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.days = days
	return nil
}

// SaveSnapshot persists the board to Redis. Fire-and-forget after each
// mutation; failures only log.
func (s *Store) SaveSnapshot() {
	data, err := s.SnapshotJSON()
	if err != nil {
		log.Println("snapshot marshal error:", err)
		return
	}
	rdx.SetJSON(SnapshotKey, data)
}

// LoadSnapshot restores the board from Redis at startup, before the board
// becomes interactive. A missing snapshot starts an empty board.
func (s *Store) LoadSnapshot() {
	data, ok := rdx.GetJSON(SnapshotKey)
	if !ok {
		return
	}
	if err := s.RestoreJSON(data); err != nil {
		log.Println("snapshot restore error:", err)
	}
}
