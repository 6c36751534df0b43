package model

// TimeLayout is the local-time layout stamped on records at creation.
const TimeLayout = "2006/01/02 15:04:05"

// Fixed address placeholders. The app requests Japanese-localized lookups
// (accept-language=ja), so the placeholders are Japanese as well. Address
// is never empty: it is always a resolved value or one of these.
const (
	AddressOffline    = "住所未取得(オフライン)"
	AddressFailed     = "住所の取得に失敗しました"
	AddressNoLocation = "位置情報なし"
)

// MemoRecord is one geotagged note. Time, Lat, Lng and Memo are fixed at
// creation; Address may be overwritten by a later successful lookup.
// Lat/Lng hold 0.0 sentinels when the location sensor failed.
type MemoRecord struct {
	// ID identifies the record in memory and over the API. It is assigned
	// on create and on load, and is not part of the persisted layout.
	ID      string  `json:"id"`
	Time    string  `json:"time"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
	Memo    string  `json:"memo"`
}

// RecordCollection is the ordered memo history, newest first.
type RecordCollection []*MemoRecord

// Clone returns a deep copy. Snapshots handed outside the lifecycle are
// always clones so no mutable reference escapes.
func (c RecordCollection) Clone() RecordCollection {
	if c == nil {
		return nil
	}
	out := make(RecordCollection, len(c))
	for i, r := range c {
		cp := *r
		out[i] = &cp
	}
	return out
}
