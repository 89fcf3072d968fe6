package address

type Address struct {
	ID          string
	Name        string
	Phone       string
	AddressLine string
	SubDistrict string
	District    string
	Province    string
	ZipCode     string
	Label       string
	Detail      string
	IsDefault   bool
}

// Input carries the writable fields. Which address is default is the
// server's call; the client only displays and selects it.
type Input struct {
	Name        string
	Phone       string
	AddressLine string
	SubDistrict string
	District    string
	Province    string
	ZipCode     string
	Label       string
	Detail      string
}
