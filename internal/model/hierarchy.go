package model

// EntityType identifies one of the five entity kinds in the ownership tree.
type EntityType string

const (
	TypeUser          EntityType = "user"
	TypeProject       EntityType = "project"
	TypeTranscription EntityType = "transcription"
	TypeTranslation   EntityType = "translation"
	TypeVoiceover     EntityType = "voiceover"
)

// parentType declares, per entity type, the type its parent reference points to.
// The ownership resolver and the cascade routine are both driven by this table;
// adding a hierarchy level means adding an entry here, not new walking code.
var parentType = map[EntityType]EntityType{
	TypeProject:       TypeUser,
	TypeTranscription: TypeProject,
	TypeTranslation:   TypeTranscription,
	TypeVoiceover:     TypeTranscription,
}

// ParentType returns the parent entity type, or ok=false for the root (User).
func ParentType(t EntityType) (EntityType, bool) {
	p, ok := parentType[t]
	return p, ok
}

// ChildTypes returns the entity types whose parent reference points at t,
// in a stable order.
func ChildTypes(t EntityType) []EntityType {
	switch t {
	case TypeUser:
		return []EntityType{TypeProject}
	case TypeProject:
		return []EntityType{TypeTranscription}
	case TypeTranscription:
		return []EntityType{TypeTranslation, TypeVoiceover}
	default:
		return nil
	}
}

// Known reports whether t is one of the declared entity types.
func Known(t EntityType) bool {
	if t == TypeUser {
		return true
	}
	_, ok := parentType[t]
	return ok
}

// MaxDepth bounds any ownership-chain walk. It is derived from the parent
// table so it stays correct as the hierarchy grows.
func MaxDepth() int {
	max := 1
	for t := range parentType {
		depth := 1
		for cur := t; ; depth++ {
			p, ok := parentType[cur]
			if !ok {
				break
			}
			cur = p
		}
		if depth > max {
			max = depth
		}
	}
	return max
}
