package design

// Generate builds the full cross of
// {participant 1..GroupSize} x {persistence level} x {identification level}
// x {topic 1..Topics} x {repetition 1..Repetitions}.
//
// The raw level index of each factor (1 or 2) is recoded to 0/1 so it can
// serve directly as a regression dummy. Group ids run sequentially over the
// (persistence x identification x topic x repetition) cells, with GroupSize
// consecutive records sharing one id. The result is fully deterministic;
// no random draw happens here.
func Generate(spec Spec) ([]UnitRecord, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	units := make([]UnitRecord, 0, spec.TotalUnits())
	id := 0
	group := 0

	for rep := 1; rep <= spec.Repetitions; rep++ {
		for topic := 1; topic <= spec.Topics; topic++ {
			for rawA := 1; rawA <= 2; rawA++ {
				for rawB := 1; rawB <= 2; rawB++ {
					group++
					for participant := 1; participant <= spec.GroupSize; participant++ {
						id++
						units = append(units, UnitRecord{
							ID:             id,
							Participant:    participant,
							Persistence:    rawA - 1,
							Identification: rawB - 1,
							Topic:          topic,
							Repetition:     rep,
							Group:          group,
						})
					}
				}
			}
		}
	}

	return units, nil
}
