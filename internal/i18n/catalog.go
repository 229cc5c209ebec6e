package i18n

import "github.com/go-playground/locales"

// Supported languages.
const (
	English    = "en"
	Indonesian = "id"
)

// messages holds every translation. Placeholders are {0}, {1}, ...
var messages = map[string]map[string]string{
	English: {
		"home":                                          "Home",
		"dashboard":                                     "Dashboard",
		"dashboard.notifications":                       "Notifications",
		"dashboard.billing":                             "Billing",
		"dashboard.gethelp":                             "Get Help",
		"dashboard.settings":                            "Settings",
		"dashboard.account":                             "Account",
		"login":                                         "Login",
		"signup":                                        "Sign Up",
		"logout":                                        "Log out",
		"markall":                                       "Mark all as read",
		"markread":                                      "Mark as read",
		"viewall":                                       "View all",
		"nonotifications":                               "No notifications",
		"errors.home":                                   "Go home",
		"errors.contact":                                "Contact support",
		"errors.retry":                                  "Try again",
		"hero.title":                                    "Run your business from one panel",
		"hero.subtitle":                                 "Billing, support and notifications in a single dashboard.",
		"hero.cta":                                      "Press l to log in or s to sign up",
		"footer":                                        "© {0} Admin Panel. All rights reserved.",
		"login.title":                                   "Welcome back",
		"login.subtitle":                                "Login with your email and password",
		"login.email":                                   "Email",
		"login.password":                                "Password",
		"login.error":                                   "Invalid email or password",
		"login.noAccount":                               "Don't have an account? Press ctrl+s to sign up",
		"signup.title":                                  "Create an account",
		"signup.fullName":                               "Full name",
		"signup.confirmPassword":                        "Confirm password",
		"signup.passwordsMismatch":                      "Passwords do not match",
		"signup.haveAccount":                            "Already have an account? Press ctrl+l to log in",
		"notifications.title":                           "Notifications",
		"notifications.subtitle":                        "Manage your alerts",
		"notifications.unread":                          "{0} unread",
		"notifications.tabs.all":                        "All ({0})",
		"notifications.tabs.favorites":                  "Favorites ({0})",
		"notifications.tabs.archived":                   "Archived ({0})",
		"notifications.noNotifications":                 "No notifications here",
		"notifications.searchPlaceholder":               "Search notifications...",
		"notifications.selected":                        "{0} selected",
		"notifications.deleteConfirm.title":             "Delete notifications?",
		"notifications.deleteConfirm.descriptionSingle": "This notification will be permanently deleted.",
		"notifications.toast.toggledFavorite":           "Favorite updated",
		"notifications.toast.archivedUpdated":           "Archive updated",
		"notifications.toast.readUpdated":               "Read status updated",
		"notifications.toast.deleted":                   "Notification deleted",
		"billing.subscription.title":                    "Subscription",
		"billing.subscription.current":                  "Current plan: {0}",
		"billing.subscription.success.subscribed":       "Subscribed to {0}",
		"billing.subscription.reset":                    "Plan reset to Basic",
		"billing.billingHistory.title":                  "Billing history",
		"billing.billingHistory.invoice":                "Invoice",
		"billing.billingHistory.date":                   "Date",
		"billing.billingHistory.plan":                   "Plan",
		"billing.billingHistory.amount":                 "Amount",
		"billing.billingHistory.status":                 "Status",
		"billing.billingHistory.showing":                "Showing {0}-{1} of {2}",
		"billing.billingHistory.page":                   "Page {0} of {1}",
		"billing.billingHistory.rowsPerPage":            "Rows per page: {0}",
		"billing.invoice.paid":                          "Invoice {0} paid",
		"billing.invoice.exported":                      "Saved {0}",
		"gethelp.tickets.myTickets":                     "My tickets",
		"gethelp.tickets.createNewTicket":               "Create new ticket",
		"gethelp.tickets.subject":                       "Subject",
		"gethelp.tickets.category":                      "Category",
		"gethelp.tickets.priority":                      "Priority",
		"gethelp.tickets.description":                   "Description",
		"gethelp.tickets.attachmentOptional":            "Attachment (optional)",
		"gethelp.tickets.status":                        "Status",
		"gethelp.tickets.created":                       "Created",
		"gethelp.tickets.updated":                       "Updated",
		"gethelp.tickets.none":                          "No tickets yet",
		"gethelp.tickets.success.ticketSubmitted":       "Ticket submitted",
		"gethelp.tickets.statusChanged":                 "Ticket moved to {0}",
		"gethelp.tickets.exported":                      "Saved {0}",
		"settings.company.info":                         "Company information",
		"settings.website.info":                         "Website information",
		"settings.saved":                                "Settings saved",
		"profile.username":                              "Username",
		"profile.fullName":                              "Full name",
		"profile.email":                                 "Email",
		"profile.image":                                 "Image URL",
		"profile.changePassword":                        "New password",
		"profile.confirmPassword":                       "Confirm password",
		"profile.success.profileSaved":                  "Profile saved",
		"sync.live":                                     "live",
		"sync.error":                                    "sync error",
	},
	Indonesian: {
		"home":                                          "Beranda",
		"dashboard":                                     "Dasbor",
		"dashboard.notifications":                       "Notifikasi",
		"dashboard.billing":                             "Tagihan",
		"dashboard.gethelp":                             "Bantuan",
		"dashboard.settings":                            "Pengaturan",
		"dashboard.account":                             "Akun",
		"login":                                         "Masuk",
		"signup":                                        "Daftar",
		"logout":                                        "Keluar",
		"markall":                                       "Tandai semua sudah dibaca",
		"markread":                                      "Tandai sudah dibaca",
		"viewall":                                       "Lihat semua",
		"nonotifications":                               "Tidak ada notifikasi",
		"errors.home":                                   "Ke beranda",
		"errors.contact":                                "Hubungi dukungan",
		"errors.retry":                                  "Coba lagi",
		"hero.title":                                    "Kelola bisnis Anda dari satu panel",
		"hero.subtitle":                                 "Tagihan, dukungan, dan notifikasi dalam satu dasbor.",
		"hero.cta":                                      "Tekan l untuk masuk atau s untuk daftar",
		"footer":                                        "© {0} Admin Panel. Hak cipta dilindungi.",
		"login.title":                                   "Selamat datang kembali",
		"login.subtitle":                                "Masuk dengan email dan kata sandi Anda",
		"login.email":                                   "Email",
		"login.password":                                "Kata sandi",
		"login.error":                                   "Email atau kata sandi salah",
		"login.noAccount":                               "Belum punya akun? Tekan ctrl+s untuk daftar",
		"signup.title":                                  "Buat akun",
		"signup.fullName":                               "Nama lengkap",
		"signup.confirmPassword":                        "Konfirmasi kata sandi",
		"signup.passwordsMismatch":                      "Kata sandi tidak cocok",
		"signup.haveAccount":                            "Sudah punya akun? Tekan ctrl+l untuk masuk",
		"notifications.title":                           "Notifikasi",
		"notifications.subtitle":                        "Kelola pemberitahuan Anda",
		"notifications.unread":                          "{0} belum dibaca",
		"notifications.tabs.all":                        "Semua ({0})",
		"notifications.tabs.favorites":                  "Favorit ({0})",
		"notifications.tabs.archived":                   "Arsip ({0})",
		"notifications.noNotifications":                 "Tidak ada notifikasi di sini",
		"notifications.searchPlaceholder":               "Cari notifikasi...",
		"notifications.selected":                        "{0} dipilih",
		"notifications.deleteConfirm.title":             "Hapus notifikasi?",
		"notifications.deleteConfirm.descriptionSingle": "Notifikasi ini akan dihapus permanen.",
		"notifications.toast.toggledFavorite":           "Favorit diperbarui",
		"notifications.toast.archivedUpdated":           "Arsip diperbarui",
		"notifications.toast.readUpdated":               "Status baca diperbarui",
		"notifications.toast.deleted":                   "Notifikasi dihapus",
		"billing.subscription.title":                    "Langganan",
		"billing.subscription.current":                  "Paket saat ini: {0}",
		"billing.subscription.success.subscribed":       "Berlangganan {0}",
		"billing.subscription.reset":                    "Paket dikembalikan ke Basic",
		"billing.billingHistory.title":                  "Riwayat tagihan",
		"billing.billingHistory.invoice":                "Faktur",
		"billing.billingHistory.date":                   "Tanggal",
		"billing.billingHistory.plan":                   "Paket",
		"billing.billingHistory.amount":                 "Jumlah",
		"billing.billingHistory.status":                 "Status",
		"billing.billingHistory.showing":                "Menampilkan {0}-{1} dari {2}",
		"billing.billingHistory.page":                   "Halaman {0} dari {1}",
		"billing.billingHistory.rowsPerPage":            "Baris per halaman: {0}",
		"billing.invoice.paid":                          "Faktur {0} dibayar",
		"billing.invoice.exported":                      "Tersimpan {0}",
		"gethelp.tickets.myTickets":                     "Tiket saya",
		"gethelp.tickets.createNewTicket":               "Buat tiket baru",
		"gethelp.tickets.subject":                       "Subjek",
		"gethelp.tickets.category":                      "Kategori",
		"gethelp.tickets.priority":                      "Prioritas",
		"gethelp.tickets.description":                   "Deskripsi",
		"gethelp.tickets.attachmentOptional":            "Lampiran (opsional)",
		"gethelp.tickets.status":                        "Status",
		"gethelp.tickets.created":                       "Dibuat",
		"gethelp.tickets.updated":                       "Diperbarui",
		"gethelp.tickets.none":                          "Belum ada tiket",
		"gethelp.tickets.success.ticketSubmitted":       "Tiket terkirim",
		"gethelp.tickets.statusChanged":                 "Tiket dipindah ke {0}",
		"gethelp.tickets.exported":                      "Tersimpan {0}",
		"settings.company.info":                         "Informasi perusahaan",
		"settings.website.info":                         "Informasi situs web",
		"settings.saved":                                "Pengaturan disimpan",
		"profile.username":                              "Nama pengguna",
		"profile.fullName":                              "Nama lengkap",
		"profile.email":                                 "Email",
		"profile.image":                                 "URL gambar",
		"profile.changePassword":                        "Kata sandi baru",
		"profile.confirmPassword":                       "Konfirmasi kata sandi",
		"profile.success.profileSaved":                  "Profil disimpan",
		"sync.live":                                     "langsung",
		"sync.error":                                    "gagal sinkron",
	},
}

// plurals holds count-dependent messages per cardinal plural rule. The
// count is {0}. Indonesian has a single form.
var plurals = map[string]map[string]map[locales.PluralRule]string{
	English: {
		"notifications.deleteConfirm.descriptionBulk": {
			locales.PluralRuleOne:   "{0} notification will be permanently deleted.",
			locales.PluralRuleOther: "{0} notifications will be permanently deleted.",
		},
		"notifications.toast.bulkDeleted": {
			locales.PluralRuleOne:   "{0} notification deleted",
			locales.PluralRuleOther: "{0} notifications deleted",
		},
		"notifications.toast.bulkMarkedRead": {
			locales.PluralRuleOne:   "{0} notification marked as read",
			locales.PluralRuleOther: "{0} notifications marked as read",
		},
	},
	Indonesian: {
		"notifications.deleteConfirm.descriptionBulk": {
			locales.PluralRuleOther: "{0} notifikasi akan dihapus permanen.",
		},
		"notifications.toast.bulkDeleted": {
			locales.PluralRuleOther: "{0} notifikasi dihapus",
		},
		"notifications.toast.bulkMarkedRead": {
			locales.PluralRuleOther: "{0} notifikasi ditandai sudah dibaca",
		},
	},
}
