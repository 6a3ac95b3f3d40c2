package util

// IDMap interns strings (street names, tag values) to dense int ids.
type IDMap struct {
	strToID map[string]int
	idToStr []string
}

func NewIdMap() IDMap {
	return IDMap{
		strToID: make(map[string]int),
		idToStr: make([]string, 0),
	}
}

func (m *IDMap) GetID(s string) int {
	if id, ok := m.strToID[s]; ok {
		return id
	}
	id := len(m.idToStr)
	m.strToID[s] = id
	m.idToStr = append(m.idToStr, s)
	return id
}

func (m *IDMap) GetStr(id int) string {
	if id < 0 || id >= len(m.idToStr) {
		return ""
	}
	return m.idToStr[id]
}

func (m *IDMap) Len() int {
	return len(m.idToStr)
}
