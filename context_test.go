package hawk

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextManager_BuildContext_GlobalsOnly(t *testing.T) {
	cm := NewContextManager(breadcrumbCapacity, false)
	cm.SetTag("a", "1")
	cm.SetExtra("b", "2")

	ctx := cm.BuildContext(nil)
	require.NotNil(t, ctx)
	assert.Equal(t, map[string]string{"a": "1"}, ctx["tags"])
	assert.Equal(t, map[string]string{"b": "2"}, ctx["extras"])
	assert.Len(t, ctx, 2)
}

func TestContextManager_BuildContext_ShallowMergeOverride(t *testing.T) {
	cm := NewContextManager(breadcrumbCapacity, false)
	cm.SetTag("a", "1")
	cm.SetExtra("b", "2")

	ctx := cm.BuildContext(map[string]any{
		"tags": map[string]string{"a": "9"},
		"c":    "3",
	})
	require.NotNil(t, ctx)

	// Top-level override, no deep merge: the event's tags replace the
	// global tags wholesale.
	assert.Equal(t, map[string]string{"a": "9"}, ctx["tags"])
	assert.Equal(t, map[string]string{"b": "2"}, ctx["extras"])
	assert.Equal(t, "3", ctx["c"])
}

func TestContextManager_BuildContext_EmptyIsAbsent(t *testing.T) {
	cm := NewContextManager(breadcrumbCapacity, false)

	assert.Nil(t, cm.BuildContext(nil))
	assert.Nil(t, cm.BuildContext(map[string]any{}))
}

func TestContextManager_SetUserReplacesWholesale(t *testing.T) {
	cm := NewContextManager(breadcrumbCapacity, false)

	assert.Nil(t, cm.User())

	cm.SetUser(User{ID: "42", Name: "Ada", URL: "https://example.com/ada"})
	cm.SetUser(User{ID: "43"})

	u := cm.User()
	require.NotNil(t, u)
	assert.Equal(t, "43", u.ID)
	// Never merged field-by-field: the old name is gone.
	assert.Empty(t, u.Name)
	assert.Empty(t, u.URL)
}

func TestContextManager_UserReturnsCopy(t *testing.T) {
	cm := NewContextManager(breadcrumbCapacity, false)
	cm.SetUser(User{ID: "42"})

	u := cm.User()
	u.ID = "mutated"

	assert.Equal(t, "42", cm.User().ID)
}

func TestContextManager_Breadcrumbs(t *testing.T) {
	cm := NewContextManager(50, false)

	for i := 0; i < 60; i++ {
		cm.AddBreadcrumb(Breadcrumb{Message: fmt.Sprintf("crumb-%d", i)})
	}

	crumbs := cm.TakeBreadcrumbs()
	require.Len(t, crumbs, 50)
	assert.Equal(t, "crumb-10", crumbs[0].Message)
	assert.Equal(t, "crumb-59", crumbs[49].Message)
	assert.False(t, crumbs[0].Timestamp.IsZero(), "AddBreadcrumb should fill a zero timestamp")

	assert.Nil(t, cm.TakeBreadcrumbs())
}

func TestContextManager_BreadcrumbsDisabled(t *testing.T) {
	cm := NewContextManager(50, true)

	cm.AddBreadcrumb(Breadcrumb{Message: "ignored"})

	assert.Nil(t, cm.TakeBreadcrumbs())
}

func TestContextManager_ConcurrentAccess(t *testing.T) {
	cm := NewContextManager(breadcrumbCapacity, false)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cm.SetTag(fmt.Sprintf("tag-%d", n), fmt.Sprintf("%d", j))
				cm.SetExtra("shared", "x")
				cm.AddBreadcrumb(Breadcrumb{Message: "crumb"})
				_ = cm.BuildContext(nil)
				_ = cm.User()
			}
		}(i)
	}
	wg.Wait()

	ctx := cm.BuildContext(nil)
	require.NotNil(t, ctx)
	tags, ok := ctx["tags"].(map[string]string)
	require.True(t, ok)
	assert.Len(t, tags, 8)
}
