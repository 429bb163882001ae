package mapper

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
	"github.com/rafasilcos/arcflowapp-sub007/internal/model"
)

type AnswerRecordMapper struct{}

func NewAnswerRecordMapper() *AnswerRecordMapper {
	return &AnswerRecordMapper{}
}

func (m *AnswerRecordMapper) ToStore(r *model.AnswerRecord) (entity.AnswerStore, error) {
	if r == nil {
		return nil, nil
	}
	var store entity.AnswerStore
	if err := json.Unmarshal(r.Respostas, &store); err != nil {
		return nil, err
	}
	return store, nil
}

func (m *AnswerRecordMapper) ToModel(briefingID uuid.UUID, store entity.AnswerStore) (*model.AnswerRecord, error) {
	doc, err := json.Marshal(store)
	if err != nil {
		return nil, err
	}
	return &model.AnswerRecord{
		BriefingId: briefingID,
		Respostas:  doc,
	}, nil
}
