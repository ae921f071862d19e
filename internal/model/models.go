package model

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&User{}, &Token{}, &OAuthProvider{},
		&Category{}, &Project{}, &ProjectImage{}, &ProjectVideo{}, &ContentBlock{},
		&SiteSettings{},
	}
}
