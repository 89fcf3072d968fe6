package address

type addressPayload struct {
	ID          string `json:"_id,omitempty"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	AddressLine string `json:"address_line"`
	SubDistrict string `json:"sub_district"`
	District    string `json:"district"`
	Province    string `json:"province"`
	ZipCode     string `json:"zip_code"`
	Label       string `json:"label"`
	Detail      string `json:"detail"`
	IsDefault   bool   `json:"is_default"`
}

func toAddress(p addressPayload) Address {
	return Address{
		ID:          p.ID,
		Name:        p.Name,
		Phone:       p.Phone,
		AddressLine: p.AddressLine,
		SubDistrict: p.SubDistrict,
		District:    p.District,
		Province:    p.Province,
		ZipCode:     p.ZipCode,
		Label:       p.Label,
		Detail:      p.Detail,
		IsDefault:   p.IsDefault,
	}
}

func fromInput(in Input) addressPayload {
	return addressPayload{
		Name:        in.Name,
		Phone:       in.Phone,
		AddressLine: in.AddressLine,
		SubDistrict: in.SubDistrict,
		District:    in.District,
		Province:    in.Province,
		ZipCode:     in.ZipCode,
		Label:       in.Label,
		Detail:      in.Detail,
	}
}
