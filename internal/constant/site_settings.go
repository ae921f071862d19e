package constant

// The site settings table holds exactly one row with this id.
const SITE_SETTINGS_ID = "main"
