package models

// Fleet and roster records. Owned externally; the board only references ids.

type Technician struct {
	ID        string `json:"id" bson:"_id"`
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
}

func (t Technician) DisplayName() string {
	if t.FirstName == "" {
		return t.LastName
	}
	if t.LastName == "" {
		return t.FirstName
	}
	return t.FirstName + " " + t.LastName
}

type Vehicle struct {
	ID   string `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
}

type Equipment struct {
	ID   string `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
}
