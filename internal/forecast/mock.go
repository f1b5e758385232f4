package forecast

import (
	"math/rand"
	"time"
)

var mockSkies = []string{"맑음", "구름많음", "흐림"}

// mockForecast builds eight 3-hourly slots of bounded random data, used
// whenever the forecast service cannot be reached.
func (c *Client) mockForecast() []Slot {
	now := c.clock.Now().In(c.loc)
	slots := make([]Slot, 0, 8)
	for i := 0; i < 8; i++ {
		slots = append(slots, Slot{
			Time:        now.Add(time.Duration(i*3) * time.Hour),
			Temperature: float64(rand.Intn(20) + 10),
			Humidity:    float64(rand.Intn(30) + 50),
			WindSpeed:   float64(rand.Intn(5) + 2),
			Sky:         mockSkies[rand.Intn(len(mockSkies))],
			PrecipType:  PrecipTypeNone,
			PrecipProb:  float64(rand.Intn(30)),
		})
	}
	return slots
}
