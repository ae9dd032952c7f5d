package model

import "github.com/hbnb-network/hbnb/internal/domain"

// Class names of the built-in model types.
const (
	BaseModel = "BaseModel"
	User      = "User"
	State     = "State"
	City      = "City"
	Amenity   = "Amenity"
	Place     = "Place"
	Review    = "Review"
)

// Default returns a registry holding BaseModel and every type derived from it.
func Default() *Registry {
	r := NewRegistry()

	base := &domain.Class{Name: BaseModel}
	r.Register(base)

	r.Register(&domain.Class{Name: User, Parent: base, Defaults: []domain.Attr{
		str("email"),
		str("password"),
		str("first_name"),
		str("last_name"),
	}})
	r.Register(&domain.Class{Name: State, Parent: base, Defaults: []domain.Attr{
		str("name"),
	}})
	r.Register(&domain.Class{Name: City, Parent: base, Defaults: []domain.Attr{
		str("state_id"),
		str("name"),
	}})
	r.Register(&domain.Class{Name: Amenity, Parent: base, Defaults: []domain.Attr{
		str("name"),
	}})
	r.Register(&domain.Class{Name: Place, Parent: base, Defaults: []domain.Attr{
		str("city_id"),
		str("user_id"),
		str("name"),
		str("description"),
		integer("number_rooms"),
		integer("number_bathrooms"),
		integer("max_guest"),
		integer("price_by_night"),
		float("latitude"),
		float("longitude"),
		{Name: "amenity_ids", Value: domain.ListValue()},
	}})
	r.Register(&domain.Class{Name: Review, Parent: base, Defaults: []domain.Attr{
		str("place_id"),
		str("user_id"),
		str("text"),
	}})

	return r
}

func str(name string) domain.Attr {
	return domain.Attr{Name: name, Value: domain.StringValue("")}
}

func integer(name string) domain.Attr {
	return domain.Attr{Name: name, Value: domain.IntValue(0)}
}

func float(name string) domain.Attr {
	return domain.Attr{Name: name, Value: domain.FloatValue(0)}
}
