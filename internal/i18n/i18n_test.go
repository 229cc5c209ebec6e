package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/admin-panel/internal/i18n"
)

func TestNew_LoadsEveryLanguage(t *testing.T) {
	c, err := i18n.New()
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "id"}, c.Languages())
}

func TestT(t *testing.T) {
	c := i18n.MustNew()

	assert.Equal(t, "Notifications", c.T("en", "notifications.title"))
	assert.Equal(t, "Notifikasi", c.T("id", "notifications.title"))
	assert.Equal(t, "3 unread", c.T("en", "notifications.unread", 3))
	assert.Equal(t, "Menampilkan 1-10 dari 37", c.T("id", "billing.billingHistory.showing", 1, 10, 37))
}

func TestT_Fallbacks(t *testing.T) {
	c := i18n.MustNew()

	assert.Equal(t, "Notifications", c.T("fr", "notifications.title"), "unknown language falls back to English")
	assert.Equal(t, "no.such.key", c.T("id", "no.such.key"))
	assert.Equal(t, " unread", c.T("en", "notifications.unread"), "missing args are blank")
}

func TestRouteToKey(t *testing.T) {
	assert.Equal(t, "home", i18n.RouteToKey(""))
	assert.Equal(t, "home", i18n.RouteToKey("/"))
	assert.Equal(t, "dashboard.users", i18n.RouteToKey("/dashboard/users"))
	assert.Equal(t, "dashboard.billing", i18n.RouteToKey("//Dashboard/Billing/"))
}

func TestTranslateTitle(t *testing.T) {
	c := i18n.MustNew()

	assert.Equal(t, "Tagihan", c.TranslateTitle("id", "/dashboard/billing"))
	assert.Equal(t, "Home", c.TranslateTitle("en", "/"))
	assert.Equal(t, "Reports", c.TranslateTitle("en", "/dashboard/reports"))
}

func TestN_PluralForms(t *testing.T) {
	c := i18n.MustNew()

	assert.Equal(t, "1 notification marked as read", c.N("en", "notifications.toast.bulkMarkedRead", 1))
	assert.Equal(t, "7 notifications marked as read", c.N("en", "notifications.toast.bulkMarkedRead", 7))
	assert.Equal(t, "0 notifications deleted", c.N("en", "notifications.toast.bulkDeleted", 0))
	assert.Equal(t, "1 notifikasi dihapus", c.N("id", "notifications.toast.bulkDeleted", 1))
	assert.Equal(t, "2 notifications will be permanently deleted.", c.N("fr", "notifications.deleteConfirm.descriptionBulk", 2))
	assert.Equal(t, "3 selected", c.N("en", "notifications.selected", 3), "keys without plural forms use T")
}
