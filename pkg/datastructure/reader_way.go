package datastructure

import "fmt"

// ReaderWay. the derived record of one source feature, handed to the encoder and to edge-added handlers.
type ReaderWay struct {
	id   int64
	tags map[string]any
}

func NewReaderWay(id int64) *ReaderWay {
	return &ReaderWay{
		id:   id,
		tags: make(map[string]any),
	}
}

func (w *ReaderWay) GetID() int64 {
	return w.id
}

func (w *ReaderWay) SetTag(key string, val any) {
	w.tags[key] = val
}

func (w *ReaderWay) GetTag(key string) (any, bool) {
	val, ok := w.tags[key]
	return val, ok
}

// GetTagString. "" when the tag is absent.
func (w *ReaderWay) GetTagString(key string) string {
	val, ok := w.tags[key]
	if !ok || val == nil {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return fmt.Sprint(val)
}

func (w *ReaderWay) HasTag(key string) bool {
	_, ok := w.tags[key]
	return ok
}

func (w *ReaderWay) GetTags() map[string]any {
	return w.tags
}
