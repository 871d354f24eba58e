// internal/schema/collections.go
//
// The built-in collection table for the Voyago platform.
//
// Context
// -------
// Default() is the single authoritative list of collections the platform
// serves: tenant storefront content (packages, blogs, events, courses),
// visitor-generated rows (bookings, contacts), and control-plane rows
// (users, themes, sites).  Tenant-scoped collections carry a `siteId`
// foreign key; the store never filters on it, callers do.
//
// Notes
// -----
// • Keep `sites` defaults in sync with site.Repository, which force-sets
//   status and theme on create.
// • Defaults must never include id, createdAt, or updatedAt; those are
//   stamped by the store and cannot be overridden.
package schema

// DefaultTheme is the theme assigned to new sites when the registrant
// picks none.  Shared with internal/site and internal/theme.
const DefaultTheme = "horizon"

// Default returns the registry for all platform collections.
func Default() *Registry {
	return NewRegistry(map[string]Schema{
		"sites": {
			Required: []string{"name", "slug", "ownerEmail"},
			Types: map[string]FieldType{
				"name":           String,
				"slug":           String,
				"ownerEmail":     String,
				"ownerName":      String,
				"description":    String,
				"logo":           String,
				"primaryColor":   String,
				"secondaryColor": String,
				"contactEmail":   String,
				"contactPhone":   String,
				"theme":          String,
				"status":         String,
			},
			Defaults: map[string]any{
				"status":      "active",
				"theme":       DefaultTheme,
				"description": "",
			},
		},
		"themes": {
			Required: []string{"name"},
			Types: map[string]FieldType{
				"name":           String,
				"label":          String,
				"primaryColor":   String,
				"secondaryColor": String,
				"fontFamily":     String,
				"preview":        String,
			},
			Defaults: map[string]any{
				"primaryColor":   "#0f766e",
				"secondaryColor": "#f59e0b",
				"fontFamily":     "Inter",
			},
		},
		"packages": {
			Required: []string{"title", "price", "siteId"},
			Types: map[string]FieldType{
				"title":        String,
				"price":        Number,
				"description":  String,
				"destination":  String,
				"durationDays": Number,
				"image":        String,
				"featured":     Boolean,
				"itinerary":    Array,
				"siteId":       String,
			},
			Defaults: map[string]any{
				"featured":    false,
				"description": "",
				"itinerary":   []any{},
			},
		},
		"bookings": {
			Required: []string{"customerName", "customerEmail", "siteId"},
			Types: map[string]FieldType{
				"customerName":  String,
				"customerEmail": String,
				"customerPhone": String,
				"packageId":     String,
				"travelers":     Number,
				"travelDate":    Date,
				"status":        String,
				"notes":         String,
				"siteId":        String,
			},
			Defaults: map[string]any{
				"status":    "pending",
				"travelers": 1,
			},
		},
		"blogs": {
			Required: []string{"title", "content", "siteId"},
			Types: map[string]FieldType{
				"title":     String,
				"content":   String,
				"excerpt":   String,
				"author":    String,
				"image":     String,
				"tags":      Array,
				"published": Boolean,
				"siteId":    String,
			},
			Defaults: map[string]any{
				"published": false,
				"tags":      []any{},
			},
		},
		"events": {
			Required: []string{"title", "date", "siteId"},
			Types: map[string]FieldType{
				"title":       String,
				"description": String,
				"date":        Date,
				"location":    String,
				"capacity":    Number,
				"price":       Number,
				"siteId":      String,
			},
			Defaults: map[string]any{
				"capacity": 0,
				"price":    0,
			},
		},
		"courses": {
			Required: []string{"title", "siteId"},
			Types: map[string]FieldType{
				"title":         String,
				"description":   String,
				"price":         Number,
				"level":         String,
				"lessons":       Array,
				"durationHours": Number,
				"siteId":        String,
			},
			Defaults: map[string]any{
				"level":   "beginner",
				"lessons": []any{},
			},
		},
		"contacts": {
			Required: []string{"name", "email", "message"},
			Types: map[string]FieldType{
				"name":    String,
				"email":   String,
				"phone":   String,
				"message": String,
				"status":  String,
				"siteId":  String,
			},
			Defaults: map[string]any{
				"status": "new",
			},
		},
		"users": {
			Required: []string{"email", "name"},
			Types: map[string]FieldType{
				"email":  String,
				"name":   String,
				"role":   String,
				"avatar": String,
				"active": Boolean,
				"siteId": String,
			},
			Defaults: map[string]any{
				// Role tags are stored but never enforced here; access
				// control lives in the admin layer.
				"role":   "viewer",
				"active": true,
			},
		},
	})
}
