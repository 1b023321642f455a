package activitylog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fitra-dev/jejak-api/internal/models"
)

func TestNormalizeScopeBareName(t *testing.T) {
	scope := NormalizeScope("Authors")

	require.Equal(t, []string{"Authors"}, scope.Models())
	id, ok := scope.Get("Authors")
	require.True(t, ok)
	require.Nil(t, id)
}

func TestNormalizeScopeMixedForms(t *testing.T) {
	article := models.Article{ID: 3, AuthorID: 7}

	scope := NormalizeScope("Users", Entry{Model: "Authors", ID: 5}, article)

	require.Equal(t, []string{"Users", "Authors", "Articles"}, scope.Models())

	id, _ := scope.Get("Authors")
	require.Equal(t, 5, id)

	id, _ = scope.Get("Articles")
	require.Equal(t, "3", id)
}

func TestNormalizeScopeFlattensSlices(t *testing.T) {
	scope := NormalizeScope([]interface{}{"Articles", Entry{Model: "Authors", ID: 1}})

	require.Equal(t, []string{"Articles", "Authors"}, scope.Models())
}

func TestNormalizeScopeIdempotent(t *testing.T) {
	first := NormalizeScope("Articles", Entry{Model: "Authors", ID: 2}, Entry{Model: "Jejak", ID: true})
	second := NormalizeScope(first)

	require.Equal(t, first.Models(), second.Models())
	first.Each(func(model string, id interface{}) {
		got, ok := second.Get(model)
		require.True(t, ok)
		require.Equal(t, id, got)
	})
}

func TestNormalizeScopeIgnoresMalformedLeaves(t *testing.T) {
	scope := NormalizeScope(42, 3.14, struct{}{}, "Authors")

	require.Equal(t, []string{"Authors"}, scope.Models())
}

func TestScopeSetKeepsInsertionOrder(t *testing.T) {
	scope := NewScope()
	scope.Set("Articles", nil)
	scope.Set("Authors", 1)
	scope.Set("Articles", 9)

	require.Equal(t, []string{"Articles", "Authors"}, scope.Models())
	id, _ := scope.Get("Articles")
	require.Equal(t, 9, id)
}

func TestPrimaryKeyStringJoinsCompositeKeys(t *testing.T) {
	subject := compositeSubject{keys: []interface{}{uint(4), "en"}}

	require.Equal(t, "4_en", PrimaryKeyString(subject))
}

type compositeSubject struct {
	keys []interface{}
}

func (c compositeSubject) LogModel() string                    { return "Translations" }
func (c compositeSubject) LogPrimaryKey() []interface{}        { return c.keys }
func (c compositeSubject) LogSnapshot() map[string]interface{} { return nil }
