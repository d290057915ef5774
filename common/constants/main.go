package constants

const (
	AdminBooksPath  = "/api/admin/books"
	AdminUsersPath  = "/api/admin/users"
	AdminOrdersPath = "/api/admin/orders"
)

const (
	CACHE_TTL_MINUTES        = 30
	SESSION_TTL_MINUTES      = 30
	MAX_LEVENSHTEIN_DISTANCE = 3
	MAX_ORDER_NOTE_LENGTH    = 500
)

const (
	SnapshotCachePrefix = "picker"
	DefaultCoverURL     = "https://via.placeholder.com/80x110/1F1E1E/FFFFFF?text=Book"
	DefaultAvatarURL    = "https://api.dicebear.com/7.x/avataaars/svg?seed=admin&backgroundColor=f3f4f6"
)
