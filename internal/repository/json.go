package repository

import "encoding/json"

// JSON columns (artists.social_links, projects.repertoire, projects.photos)
// are read as raw bytes and decoded here.  NULL decodes to an empty value so
// API responses never carry null collections.

func encodeStrings(v []string) ([]byte, error) {
	if v == nil {
		v = []string{}
	}
	return json.Marshal(v)
}

func decodeStrings(raw []byte) ([]string, error) {
	out := []string{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func encodeLinks(v map[string]string) ([]byte, error) {
	if v == nil {
		v = map[string]string{}
	}
	return json.Marshal(v)
}

func decodeLinks(raw []byte) (map[string]string, error) {
	out := map[string]string{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]string{}
	}
	return out, nil
}
