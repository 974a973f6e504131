package badger

import (
	"encoding/binary"
	"fmt"
)

// Key prefixes for different data types
const (
	botRecordPrefix   = "botrec"
	chunkRecordPrefix = "vecrec"
	chunkSeq          = "vecseq"
)

// makeBotKey generates a key for a bot metadata record by ID.
func makeBotKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", botRecordPrefix, id))
}

// makeBotScanPrefix generates the prefix covering all bot metadata records.
func makeBotScanPrefix() []byte {
	return []byte(botRecordPrefix + ":")
}

// makeChunkKey generates a composite key for a stored chunk.
// Format: prefix:botID:seq
func makeChunkKey(botID string, seq uint64) []byte {
	prefix := chunkRecordPrefix + ":" + botID + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for the sequence number
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort follows insertion order
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makeChunkScanPrefix generates the prefix covering one bot's chunks.
// The trailing separator keeps bot IDs that share a prefix isolated.
func makeChunkScanPrefix(botID string) []byte {
	return []byte(chunkRecordPrefix + ":" + botID + ":")
}
