package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_SetAll(t *testing.T) {
	t.Run("replaces the snapshot", func(t *testing.T) {
		s := NewStore(item{ID: "x"})
		s.SetAll(sampleItems())
		assert.Equal(t, sampleItems(), s.All())
	})

	t.Run("first record of a duplicated id wins", func(t *testing.T) {
		s := NewStore(item{ID: "1", Name: "first"}, item{ID: "2"}, item{ID: "1", Name: "second"})
		assert.Equal(t, []item{{ID: "1", Name: "first"}, {ID: "2"}}, s.All())
	})

	t.Run("empty", func(t *testing.T) {
		s := NewStore(sampleItems()...)
		s.SetAll(nil)
		assert.Equal(t, 0, s.Len())
		assert.NotNil(t, s.All())
	})
}

func TestStore_ReplaceByID(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		rec    item
		wantOK bool
		want   []item
	}{
		{
			name:   "present id keeps length and order",
			id:     "2",
			rec:    item{ID: "2", Name: "Data Structures II", Program: "IT"},
			wantOK: true,
			want: []item{
				{ID: "1", Name: "CS101", Program: "CS"},
				{ID: "2", Name: "Data Structures II", Program: "IT"},
				{ID: "3", Name: "CS201", Program: "CS"},
			},
		},
		{
			name: "absent id never appends",
			id:   "9",
			rec:  item{ID: "9", Name: "ghost"},
			want: sampleItems(),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore(sampleItems()...)
			before := s.All()

			ok := s.ReplaceByID(tc.id, tc.rec)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, s.All())
			assert.Equal(t, sampleItems(), before, "earlier copies are not modified")
		})
	}
}

func TestStore_RemoveByID(t *testing.T) {
	s := NewStore(sampleItems()...)

	assert.True(t, s.RemoveByID("2"))
	assert.Equal(t, []item{sampleItems()[0], sampleItems()[2]}, s.All())
	_, ok := s.Get("2")
	assert.False(t, ok)

	assert.False(t, s.RemoveByID("2"))
	assert.Equal(t, 2, s.Len())
}

func TestStore_Append(t *testing.T) {
	s := NewStore(sampleItems()...)

	assert.True(t, s.Append(item{ID: "4", Name: "new"}))
	assert.Equal(t, 3, s.IndexOf("4"))

	assert.False(t, s.Append(item{ID: "1", Name: "dup"}))
	rec, _ := s.Get("1")
	assert.Equal(t, "CS101", rec.Name)
	assert.Equal(t, 4, s.Len())
}

func TestStore_AllIsACopy(t *testing.T) {
	s := NewStore(sampleItems()...)
	all := s.All()
	all[0].Name = "changed"

	rec, _ := s.Get("1")
	assert.Equal(t, "CS101", rec.Name)
}
