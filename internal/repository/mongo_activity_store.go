package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/noah-isme/mergington-activities-api/internal/models"
)

// Collection names used by the Mongo stores.
const (
	ActivitiesCollection = "activities"
	TeachersCollection   = "teachers"
)

type scheduleDocument struct {
	Days      []string `bson:"days"`
	StartTime string   `bson:"start_time"`
	EndTime   string   `bson:"end_time"`
}

type activityDocument struct {
	Name            string           `bson:"_id"`
	Description     string           `bson:"description"`
	Schedule        string           `bson:"schedule"`
	ScheduleDetails scheduleDocument `bson:"schedule_details"`
	Category        string           `bson:"category"`
	MaxParticipants int              `bson:"max_participants"`
	Participants    []string         `bson:"participants"`
	Position        int              `bson:"position"`
}

func newActivityDocument(a models.Activity, position int) activityDocument {
	days := make([]string, len(a.ScheduleDetails.Days))
	for i, d := range a.ScheduleDetails.Days {
		days[i] = string(d)
	}
	participants := a.Participants
	if participants == nil {
		participants = []string{}
	}
	return activityDocument{
		Name:        a.Name,
		Description: a.Description,
		Schedule:    a.Schedule,
		ScheduleDetails: scheduleDocument{
			Days:      days,
			StartTime: a.ScheduleDetails.StartTime,
			EndTime:   a.ScheduleDetails.EndTime,
		},
		Category:        string(a.Category),
		MaxParticipants: a.MaxParticipants,
		Participants:    participants,
		Position:        position,
	}
}

func (d activityDocument) toModel() models.Activity {
	days := make([]models.Weekday, len(d.ScheduleDetails.Days))
	for i, day := range d.ScheduleDetails.Days {
		days[i] = models.Weekday(day)
	}
	participants := d.Participants
	if participants == nil {
		participants = []string{}
	}
	return models.Activity{
		Name:        d.Name,
		Description: d.Description,
		Schedule:    d.Schedule,
		ScheduleDetails: models.Schedule{
			Days:      days,
			StartTime: d.ScheduleDetails.StartTime,
			EndTime:   d.ScheduleDetails.EndTime,
		},
		Category:        models.Category(d.Category),
		MaxParticipants: d.MaxParticipants,
		Participants:    participants,
	}
}

// signupFilter matches the activity only while email is absent and a seat is free,
// so the $push that follows is a single atomic check-then-add.
func signupFilter(name, email string) bson.M {
	return bson.M{
		"_id":          name,
		"participants": bson.M{"$ne": email},
		"$expr": bson.M{
			"$lt": bson.A{bson.M{"$size": "$participants"}, "$max_participants"},
		},
	}
}

func withdrawFilter(name, email string) bson.M {
	return bson.M{"_id": name, "participants": email}
}

// MongoActivityStore persists one document per activity keyed by name.
type MongoActivityStore struct {
	coll *mongo.Collection
}

// NewMongoActivityStore constructs the store over the activities collection.
func NewMongoActivityStore(db *mongo.Database) *MongoActivityStore {
	return &MongoActivityStore{coll: db.Collection(ActivitiesCollection)}
}

// Seed inserts activities that are not yet present.
func (s *MongoActivityStore) Seed(ctx context.Context, activities []models.Activity) (int, error) {
	existing, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, unavailable("count activities", err)
	}
	added := 0
	for _, a := range activities {
		doc := newActivityDocument(a, int(existing)+added)
		if _, err := s.coll.InsertOne(ctx, doc); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			return added, unavailable("seed activity "+a.Name, err)
		}
		added++
	}
	return added, nil
}

// Get returns the named activity.
func (s *MongoActivityStore) Get(ctx context.Context, name string) (*models.Activity, error) {
	var doc activityDocument
	if err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrActivityNotFound
		}
		return nil, unavailable("find activity", err)
	}
	activity := doc.toModel()
	return &activity, nil
}

// List returns every activity in catalog order.
func (s *MongoActivityStore) List(ctx context.Context) ([]models.Activity, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	if err != nil {
		return nil, unavailable("list activities", err)
	}
	var docs []activityDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, unavailable("decode activities", err)
	}
	activities := make([]models.Activity, 0, len(docs))
	for _, doc := range docs {
		activities = append(activities, doc.toModel())
	}
	return activities, nil
}

// AddParticipant pushes email with a conditional update and classifies a miss by re-reading.
func (s *MongoActivityStore) AddParticipant(ctx context.Context, name, email string) (*models.Activity, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$push": bson.M{"participants": email}}

	for attempt := 0; attempt < signupAttempts; attempt++ {
		var doc activityDocument
		err := s.coll.FindOneAndUpdate(ctx, signupFilter(name, email), update, opts).Decode(&doc)
		if err == nil {
			activity := doc.toModel()
			return &activity, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, unavailable("add participant", err)
		}

		current, err := s.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		if err := classifySignupMiss(*current, email); err != nil {
			return nil, err
		}
	}
	return nil, unavailable("add participant", errSignupContended)
}

const signupAttempts = 2

var errSignupContended = errors.New("roster changed during signup")

// classifySignupMiss explains why the conditional $push matched nothing. A nil
// result means the roster moved between the update and the re-read and the
// update is worth retrying.
func classifySignupMiss(current models.Activity, email string) error {
	switch {
	case current.HasParticipant(email):
		return ErrAlreadyRegistered
	case current.IsFull():
		return ErrCapacityExceeded
	default:
		return nil
	}
}

// RemoveParticipant pulls email from the roster.
func (s *MongoActivityStore) RemoveParticipant(ctx context.Context, name, email string) (*models.Activity, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$pull": bson.M{"participants": email}}

	var doc activityDocument
	err := s.coll.FindOneAndUpdate(ctx, withdrawFilter(name, email), update, opts).Decode(&doc)
	if err == nil {
		activity := doc.toModel()
		return &activity, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, unavailable("remove participant", err)
	}

	if _, err := s.Get(ctx, name); err != nil {
		return nil, err
	}
	return nil, ErrNotRegistered
}

// Ping checks server reachability.
func (s *MongoActivityStore) Ping(ctx context.Context) error {
	if err := s.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

type teacherDocument struct {
	Username    string `bson:"_id"`
	DisplayName string `bson:"display_name"`
	Password    string `bson:"password"`
	Role        string `bson:"role"`
}

// MongoTeacherStore reads staff accounts from the teachers collection.
type MongoTeacherStore struct {
	coll *mongo.Collection
}

// NewMongoTeacherStore constructs the store over the teachers collection.
func NewMongoTeacherStore(db *mongo.Database) *MongoTeacherStore {
	return &MongoTeacherStore{coll: db.Collection(TeachersCollection)}
}

// FindByUsername returns the teacher identified by username.
func (s *MongoTeacherStore) FindByUsername(ctx context.Context, username string) (*models.Teacher, error) {
	var doc teacherDocument
	if err := s.coll.FindOne(ctx, bson.M{"_id": username}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTeacherNotFound
		}
		return nil, unavailable("find teacher", err)
	}
	return &models.Teacher{
		Username:     doc.Username,
		DisplayName:  doc.DisplayName,
		PasswordHash: doc.Password,
		Role:         models.TeacherRole(doc.Role),
	}, nil
}

// Seed inserts teachers that are not yet present.
func (s *MongoTeacherStore) Seed(ctx context.Context, teachers []models.Teacher) (int, error) {
	added := 0
	for _, t := range teachers {
		doc := teacherDocument{Username: t.Username, DisplayName: t.DisplayName, Password: t.PasswordHash, Role: string(t.Role)}
		if _, err := s.coll.InsertOne(ctx, doc); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			return added, unavailable("seed teacher "+t.Username, err)
		}
		added++
	}
	return added, nil
}
