package jsondb

import "encoding/json"

// The repositories convert between domain structs and Records by round-
// tripping through encoding/json: the structs' json tags are the wire format
// (_id, createdAt, ...), so the same codec serves both the file and the API.

func toRecord(v interface{}) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func fromRecord(rec Record, v interface{}) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func fromRecords(recs []Record, v interface{}) error {
	data, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
