package store

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/t-cool/naturalist/internal/model"
)

// persistedRecord is the on-disk element shape. Record IDs are an
// in-memory concern and are regenerated on load; the stored layout is
// exactly {time, lat, lng, address, memo} and must round-trip as such.
type persistedRecord struct {
	Time    string  `json:"time"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
	Memo    string  `json:"memo"`
}

// EncodeRecords serializes a collection into the slot payload.
func EncodeRecords(records model.RecordCollection) ([]byte, error) {
	out := make([]persistedRecord, 0, len(records))
	for _, r := range records {
		out = append(out, persistedRecord{
			Time:    r.Time,
			Lat:     r.Lat,
			Lng:     r.Lng,
			Address: r.Address,
			Memo:    r.Memo,
		})
	}
	return json.Marshal(out)
}

// DecodeRecords parses a slot payload. The payload must be a JSON array or
// decoding fails with model.ErrCorruptData; individual elements that do not
// match the record shape are skipped with a warning so one bad entry cannot
// take the whole history down.
func DecodeRecords(payload []byte) (model.RecordCollection, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return model.RecordCollection{}, nil
	}
	if !gjson.ValidBytes(payload) {
		return nil, model.ErrCorruptData
	}
	root := gjson.ParseBytes(payload)
	if !root.IsArray() {
		return nil, model.ErrCorruptData
	}

	records := model.RecordCollection{}
	skipped := 0
	root.ForEach(func(_, el gjson.Result) bool {
		rec, ok := decodeElement(el)
		if !ok {
			skipped++
			return true
		}
		records = append(records, rec)
		return true
	})
	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Msg("dropped malformed history entries")
	}
	return records, nil
}

func decodeElement(el gjson.Result) (*model.MemoRecord, bool) {
	if !el.IsObject() {
		return nil, false
	}
	t := el.Get("time")
	lat := el.Get("lat")
	lng := el.Get("lng")
	addr := el.Get("address")
	memo := el.Get("memo")

	if t.Type != gjson.String || addr.Type != gjson.String || memo.Type != gjson.String {
		return nil, false
	}
	if lat.Type != gjson.Number || lng.Type != gjson.Number {
		return nil, false
	}
	return &model.MemoRecord{
		ID:      uuid.NewString(),
		Time:    t.String(),
		Lat:     lat.Float(),
		Lng:     lng.Float(),
		Address: addr.String(),
		Memo:    memo.String(),
	}, true
}
