package db

// The session's resume text. One document per session, overwritten in place.
type ResumeModel struct {
	ID        string `bson:"_id"` // sessionId
	Text      string `bson:"text"`
	UpdatedAt int64  `bson:"updatedAt"`
}

func (m ResumeModel) Id() string {
	return m.ID
}

func (m ResumeModel) CollectionName() string {
	return "resumes"
}
