package domain

// Record is a general purpose entity used for fixtures and the seed CLI.
type Record struct {
	Model  `yaml:",inline"`
	Kind   string            `json:"kind,omitempty" yaml:"kind,omitempty"`
	Name   string            `json:"name,omitempty" yaml:"name,omitempty"`
	Fields map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
	Tags   []string          `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Clone returns a copy of r that shares no maps or slices with it.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	cp := *r
	if r.Fields != nil {
		cp.Fields = make(map[string]string, len(r.Fields))
		for k, v := range r.Fields {
			cp.Fields[k] = v
		}
	}
	if r.Tags != nil {
		cp.Tags = append([]string(nil), r.Tags...)
	}
	return &cp
}
