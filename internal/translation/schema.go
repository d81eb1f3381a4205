package translation

// SchemaType is the JSON type of a schema node
type SchemaType string

const (
	TypeObject SchemaType = "object"
	TypeString SchemaType = "string"
	TypeArray  SchemaType = "array"
)

// Schema is a backend-neutral description of the structure the backend must
// emit. Backends convert it into their own constrained-output format.
type Schema struct {
	Type        SchemaType
	Description string

	// Properties and PropertyOrdering apply to objects. PropertyOrdering
	// fixes the emitted key order.
	Properties       map[string]*Schema
	PropertyOrdering []string
	Required         []string

	// Items, MinItems and MaxItems apply to arrays
	Items    *Schema
	MinItems *int
	MaxItems *int
}

// IsRequired reports whether the object property name is required
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// ResultSchema describes a Result. A positive glossarySize pins the
// relatedTerms array to exactly that many items.
func ResultSchema(glossarySize int) *Schema {
	terms := &Schema{
		Type:        TypeArray,
		Description: "Every German term marked in the explanation, each exactly once",
		Items: &Schema{
			Type: TypeObject,
			Properties: map[string]*Schema{
				"term":         {Type: TypeString, Description: "German word or phrase, nouns WITH article"},
				"meaning":      {Type: TypeString, Description: "Vietnamese meaning"},
				"partOfSpeech": {Type: TypeString, Description: "Part of speech in Vietnamese"},
			},
			PropertyOrdering: []string{"term", "meaning", "partOfSpeech"},
			Required:         []string{"term", "meaning"},
		},
	}
	if glossarySize > 0 {
		n := glossarySize
		terms.MinItems = &n
		terms.MaxItems = &n
	}

	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"translatedText":   {Type: TypeString, Description: "The translation"},
			"explanation":      {Type: TypeString, Description: "Linguistic and cultural note in Vietnamese"},
			"mainPartOfSpeech": {Type: TypeString, Description: "Part of speech of the translation in Vietnamese"},
			"relatedTerms":     terms,
		},
		PropertyOrdering: []string{"translatedText", "mainPartOfSpeech", "explanation", "relatedTerms"},
		Required:         []string{"translatedText", "relatedTerms"},
	}
}
