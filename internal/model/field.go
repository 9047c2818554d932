package model

// Field is one entry of the fixed price/volume vocabulary.
type Field int

const (
	Close Field = iota
	High
	Low
	Open
	Volume

	NumFields = int(Volume) + 1
)

var fieldNames = [NumFields]string{
	Close:  "Close",
	High:   "High",
	Low:    "Low",
	Open:   "Open",
	Volume: "Volume",
}

// Fields returns the vocabulary in canonical column order.
func Fields() []Field {
	return []Field{Close, High, Low, Open, Volume}
}

// String returns the provider label of the field.
func (f Field) String() string {
	if f < 0 || int(f) >= NumFields {
		return "Field(?)"
	}
	return fieldNames[f]
}

// Integral reports whether the provider reports f as whole counts.
func (f Field) Integral() bool { return f == Volume }

// ParseField resolves a provider column label to a Field.
func ParseField(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}
