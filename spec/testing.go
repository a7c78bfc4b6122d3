package spec

// TestTitle is the title of the embedded testing document.
const TestTitle = "Pet store (testing)"

// Test returns a small document exercising every parameter location, the
// collection formats, string formats, body schemas and security overrides.
//
// Every call builds a fresh document, so tests may not share pointers across
// calls but may rely on the document not being mutated by the code under
// test.
func Test() *Document {
	owner := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"name": {Type: TypeString},
			"age":  {Type: TypeInteger},
		},
	}
	pet := &Schema{
		Type:     TypeObject,
		Required: []string{"name"},
		Properties: map[string]*Schema{
			"id":    {Type: TypeInteger},
			"name":  {Type: TypeString},
			"born":  {Type: TypeString, Format: FormatDate},
			"tags":  {Type: TypeArray, Items: &Schema{Type: TypeString}},
			"owner": owner,
		},
	}

	petIDPath := &Parameter{Name: "pet_id", In: ParameterPath, Required: true, Type: TypeString}

	listPets := &Operation{
		OperationID: "listPets",
		Parameters: []*Parameter{
			{Name: "limit", In: ParameterQuery, Type: TypeInteger, Default: 20},
			{Name: "tags", In: ParameterQuery, Type: TypeArray, Items: &Schema{Type: TypeString}},
			{
				Name:             "status",
				In:               ParameterQuery,
				Type:             TypeArray,
				Items:            &Schema{Type: TypeString},
				CollectionFormat: CollectionMulti,
			},
			{Name: "X-Trace", In: ParameterHeader, Type: TypeString},
		},
	}
	createPet := &Operation{
		OperationID: "createPet",
		Parameters: []*Parameter{
			{Name: "pet", In: ParameterBody, Required: true, Schema: pet},
		},
		Security: &SecurityRequirements{
			{"petstore_auth": {"write:pets"}},
		},
	}
	getPet := &Operation{
		OperationID: "getPet",
		Parameters: []*Parameter{
			{Name: "pet_id", In: ParameterPath, Required: true, Type: TypeInteger},
			{Name: "verbose", In: ParameterQuery, Type: TypeBoolean, Default: false},
		},
	}
	deletePet := &Operation{
		OperationID: "deletePet",
		Security:    &SecurityRequirements{},
	}
	uploadPhoto := &Operation{
		OperationID: "uploadPhoto",
		Consumes:    []string{"multipart/form-data"},
		Parameters: []*Parameter{
			{Name: "caption", In: ParameterFormData, Type: TypeString},
			{Name: "photo", In: ParameterFormData, Type: TypeFile},
			{
				Name:             "labels",
				In:               ParameterFormData,
				Type:             TypeArray,
				Items:            &Schema{Type: TypeString},
				CollectionFormat: CollectionMulti,
			},
		},
	}
	search := &Operation{
		OperationID: "search",
		Parameters: []*Parameter{
			{Name: "q", In: ParameterQuery, Type: TypeString, Default: "some default value"},
			{Name: "since", In: ParameterQuery, Type: TypeString, Format: FormatDateTime},
			{Name: "on", In: ParameterQuery, Type: TypeString, Format: FormatDate},
			{Name: "exact", In: ParameterQuery, Type: TypeBoolean},
			{Name: "score", In: ParameterQuery, Type: TypeNumber},
			{
				Name:             "fields",
				In:               ParameterQuery,
				Type:             TypeArray,
				Items:            &Schema{Type: TypeString},
				CollectionFormat: CollectionPipes,
			},
			{Name: "X-Tags", In: ParameterHeader, Type: TypeArray, Items: &Schema{Type: TypeString}},
			{Name: "filter", In: ParameterQuery, Type: TypeObject},
		},
	}
	brokenLocation := &Operation{
		OperationID: "broken",
		Parameters: []*Parameter{
			{Name: "session", In: Location("cookie"), Type: TypeString},
		},
	}
	brokenSecurity := &Operation{
		OperationID: "brokenSecurity",
		Security: &SecurityRequirements{
			{"missing_scheme": {}},
		},
	}

	return &Document{
		Swagger:  "2.0",
		Info:     &Info{Title: TestTitle, Version: "1.0.0"},
		BasePath: "/",
		Paths: Paths{
			{Path: "/pets", Item: &PathItem{Operations: map[HTTPVerb]*Operation{
				VerbGet:  listPets,
				VerbPost: createPet,
			}}},
			{Path: "/pets/search", Item: &PathItem{Operations: map[HTTPVerb]*Operation{
				VerbGet: search,
			}}},
			{Path: "/pets/{pet_id}", Item: &PathItem{
				Parameters: []*Parameter{petIDPath},
				Operations: map[HTTPVerb]*Operation{
					VerbGet:    getPet,
					VerbDelete: deletePet,
				},
			}},
			{Path: "/pets/{pet_id}/photos", Item: &PathItem{
				Parameters: []*Parameter{petIDPath},
				Operations: map[HTTPVerb]*Operation{
					VerbPost: uploadPhoto,
				},
			}},
			{Path: "/broken", Item: &PathItem{Operations: map[HTTPVerb]*Operation{
				VerbGet:  brokenLocation,
				VerbPost: brokenSecurity,
			}}},
		},
		Definitions: map[string]*Schema{
			"Owner": owner,
			"Pet":   pet,
		},
		Security: SecurityRequirements{
			{"api_key": {}},
		},
		SecurityDefinitions: map[string]*SecurityScheme{
			"api_key": {
				Type: "apiKey",
				Name: "X-API-Key",
				In:   "header",
			},
			"petstore_auth": {
				Type:             "oauth2",
				Flow:             "implicit",
				AuthorizationURL: "https://petstore.example.com/oauth/authorize",
				Scopes: map[string]string{
					"read:pets":  "read your pets",
					"write:pets": "modify pets in your account",
				},
			},
		},
	}
}
