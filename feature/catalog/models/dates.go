package models

import (
	"encoding/json"
	"fmt"
	"time"

	"movies-app/core/utils"
)

// jsonDate decodes either a YYYY-MM-DD date or an RFC3339 timestamp.
// null and "" decode to the zero time so required-field validation reports them.
type jsonDate time.Time

func (d *jsonDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = jsonDate{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	if len(raw) <= len(utils.DateLayout) {
		t, err := utils.ParseDate(raw)
		if err != nil {
			return err
		}
		*d = jsonDate(t)
		return nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected %s or RFC3339", raw, utils.DateLayout)
	}
	*d = jsonDate(t)
	return nil
}

// UnmarshalJSON accepts releaseDate as a plain date or a timestamp.
func (d *MovieDto) UnmarshalJSON(data []byte) error {
	type plain MovieDto
	aux := struct {
		*plain
		ReleaseDate jsonDate `json:"releaseDate"`
	}{plain: (*plain)(d)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.ReleaseDate = time.Time(aux.ReleaseDate)
	return nil
}

// UnmarshalJSON accepts birthday as a plain date or a timestamp.
func (d *ArtistDto) UnmarshalJSON(data []byte) error {
	type plain ArtistDto
	aux := struct {
		*plain
		Birthday jsonDate `json:"birthday"`
	}{plain: (*plain)(d)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.Birthday = time.Time(aux.Birthday)
	return nil
}
