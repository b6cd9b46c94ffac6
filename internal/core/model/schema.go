package model

// FieldKind is the nominal type of an entity field. It decides how the
// field is rendered in a literal fragment.
type FieldKind int

const (
	KindText FieldKind = iota
	KindName
	KindInt
	KindBool
	KindTimestamp
)

func (k FieldKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindName:
		return "name"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindTimestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

// Verbatim reports whether fields of this kind are interpolated into a
// fragment as-is instead of going through the literal serializer.
func (k FieldKind) Verbatim() bool {
	return k == KindText || k == KindName
}

type Field struct {
	Name string
	Kind FieldKind
}

// Schema is the ordered field list and graph label of one entity kind.
type Schema struct {
	Label string
	// Key is the field that identifies a node of this label.
	Key    string
	Fields []Field
}

// Field looks up a declared field by name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names returns the declared field names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Matches MPD track rows: artist_name, track_uri, ..., album_name
var TrackSchema = &Schema{
	Label: "Track",
	Key:   "track_uri",
	Fields: []Field{
		{Name: "artist_name", Kind: KindText},
		{Name: "track_uri", Kind: KindText},
		{Name: "artist_uri", Kind: KindText},
		{Name: "track_name", Kind: KindText},
		{Name: "album_uri", Kind: KindText},
		{Name: "duration_ms", Kind: KindInt},
		{Name: "album_name", Kind: KindText},
	},
}

var PlaylistSchema = &Schema{
	Label: "Playlist",
	Key:   "pid",
	Fields: []Field{
		{Name: "name", Kind: KindName},
		{Name: "collaborative", Kind: KindBool},
		{Name: "pid", Kind: KindInt},
		{Name: "modified_at", Kind: KindTimestamp},
		{Name: "num_albums", Kind: KindInt},
		{Name: "num_tracks", Kind: KindInt},
		{Name: "num_followers", Kind: KindInt},
		{Name: "num_edits", Kind: KindInt},
		{Name: "duration_ms", Kind: KindInt},
		{Name: "num_artists", Kind: KindInt},
	},
}
