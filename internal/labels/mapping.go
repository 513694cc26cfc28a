package labels

import (
	"encoding/json"

	"github.com/verdict-labs/verdict/pkg/repository"
)

const labelColumns = `l.id, l.content_item_id, l.labeler_id, l.classification,
	l.confidence_score, l.ai_indicators, l.human_indicators, l.tags,
	l.time_spent_seconds, l.created_at`

func scanLabel(s repository.Scanner) (Label, error) {
	var (
		label Label
		ai    []byte
		human []byte
		tags  []byte
	)

	err := s.Scan(
		&label.ID,
		&label.ContentItemID,
		&label.LabelerID,
		&label.Classification,
		&label.ConfidenceScore,
		&ai,
		&human,
		&tags,
		&label.TimeSpentSeconds,
		&label.CreatedAt,
	)
	if err != nil {
		return label, err
	}

	if err := unmarshalList(ai, &label.AIIndicators); err != nil {
		return label, err
	}
	if err := unmarshalList(human, &label.HumanIndicators); err != nil {
		return label, err
	}
	if err := unmarshalList(tags, &label.Tags); err != nil {
		return label, err
	}

	return label, nil
}

func unmarshalList(data []byte, dest *[]string) error {
	if len(data) == 0 {
		*dest = []string{}
		return nil
	}
	return json.Unmarshal(data, dest)
}

func marshalList(list []string) []byte {
	if list == nil {
		list = []string{}
	}
	data, _ := json.Marshal(list)
	return data
}
