package models

// User est le principal de session dérivé du profil Discord au login.
// Il vit uniquement dans le JWT signé, jamais en base.
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar"`
	Banner        string `json:"banner,omitempty"`
}

// DisplayName retourne le tag complet username#discriminator
// (ou juste le username pour les comptes migrés sans discriminator)
func (u User) DisplayName() string {
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}
