package model

// AccessToken is the object embedded in the access tokens issued by the
// external identity provider.
type AccessToken struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
