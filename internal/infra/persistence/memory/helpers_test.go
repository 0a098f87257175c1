package memory_test

import (
	"uamtta/internal/infra/persistence/memory"
	"uamtta/pkg/domain"
)

type testModel struct {
	domain.Model
	SomeInt    int
	SomeString string
	Labels     []string
}

func (m *testModel) Clone() *testModel {
	cp := *m
	if m.Labels != nil {
		cp.Labels = append([]string(nil), m.Labels...)
	}
	return &cp
}

func newRepo() *memory.Repository[*testModel] {
	return memory.NewRepository[*testModel]()
}

func transient(i int, s string) *testModel {
	return &testModel{SomeInt: i, SomeString: s}
}

func withID(id, i int, s string) *testModel {
	m := transient(i, s)
	m.ID = id
	return m
}
