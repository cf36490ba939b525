package models

// TransportType selects how the student travels.
type TransportType string

const (
	TransportPublic TransportType = "public"
	TransportCar    TransportType = "car"
	TransportWalk   TransportType = "walk"
)

// CampusAddress binds a campus code to the street address used for routing.
type CampusAddress struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Settings is the single user-wide preference record.
type Settings struct {
	MorningRoutine       int             `json:"morningRoutine"`
	ExtraTime            int             `json:"extraTime"`
	HomeAddress          string          `json:"homeAddress"`
	CampusAddresses      []CampusAddress `json:"campusAddresses"`
	TransportType        TransportType   `json:"transportType"`
	GroupNumber          string          `json:"groupNumber"`
	WeatherNotifications bool            `json:"weatherNotifications"`
	TrafficNotifications bool            `json:"trafficNotifications"`
	CustomRouteDuration  *int            `json:"customRouteDuration"`
}

// DefaultSettings returns first-run settings with blank addresses for every known campus.
func DefaultSettings(calendar AcademicCalendar) Settings {
	campuses := calendar.Campuses()
	addresses := make([]CampusAddress, 0, len(campuses))
	for _, campus := range campuses {
		addresses = append(addresses, CampusAddress{Code: campus.Code, Name: campus.Name})
	}
	return Settings{
		MorningRoutine:       60,
		ExtraTime:            10,
		CampusAddresses:      addresses,
		TransportType:        TransportPublic,
		TrafficNotifications: true,
	}
}
