package timezone

import (
	"time"
	_ "time/tzdata"
)

// Location is the zone run history is recorded and shown in. The
// catalogs are maintained in Moscow time.
var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Moscow")
	if err != nil {
		panic(err)
	}
}

func Now() time.Time {
	return time.Now().In(Location)
}

// Format renders t in Location, to the minute.
func Format(t time.Time) string {
	return t.In(Location).Format("2006-01-02 15:04")
}
