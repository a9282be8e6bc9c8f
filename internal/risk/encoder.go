package risk

// UnknownLabel is the reserved bucket for category values never seen at
// training time.
const UnknownLabel = "unknown"

// LabelEncoder maps category strings to the integer codes the model was
// trained with. Values unseen at fit time encode to a reserved "unknown"
// bucket; the bucket is appended to the class list when the training-time
// encoder did not have one, which leaves every original code untouched.
// Encoders are immutable after construction and safe for concurrent use.
type LabelEncoder struct {
	classes []string
	index   map[string]int
	unknown int
}

// NewLabelEncoder builds an encoder over the training-time class list.
func NewLabelEncoder(classes []string) *LabelEncoder {
	e := &LabelEncoder{
		classes: append([]string(nil), classes...),
		index:   make(map[string]int, len(classes)+1),
	}
	for i, c := range e.classes {
		e.index[c] = i
	}
	if i, ok := e.index[UnknownLabel]; ok {
		e.unknown = i
	} else {
		e.classes = append(e.classes, UnknownLabel)
		e.unknown = len(e.classes) - 1
		e.index[UnknownLabel] = e.unknown
	}
	return e
}

// Encode returns the integer code for a value, or the unknown bucket for
// values outside the training vocabulary.
func (e *LabelEncoder) Encode(value string) int {
	if i, ok := e.index[value]; ok {
		return i
	}
	return e.unknown
}

// Classes returns the class list including the unknown bucket.
func (e *LabelEncoder) Classes() []string {
	return append([]string(nil), e.classes...)
}
