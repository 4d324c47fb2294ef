package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/crimechain/report-api/databases"
	mocksdb "github.com/crimechain/report-api/databases/mocks"
	"github.com/crimechain/report-api/models"
)

func TestReportDatabaseFindOne(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}
	singleResult := &mocksdb.SingleResultHelper{}

	id := primitive.NewObjectID()
	singleResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Report)
		(*arg).ID = id
		(*arg).Title = "Stolen bicycle"
	})
	conn.On("FindOne", mock.Anything, bson.M{"_id": id}).Return(singleResult)
	db.On("Collection", "reports").Return(conn)

	reportDB := databases.NewReportDatabase(db)
	report, err := reportDB.FindOne(context.TODO(), bson.M{"_id": id})

	assert.NoError(t, err)
	assert.Equal(t, "Stolen bicycle", report.Title)
}

func TestReportDatabaseFindOneDecodeError(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}
	singleResult := &mocksdb.SingleResultHelper{}

	singleResult.On("Decode", mock.Anything).Return(errors.New("mocked-error"))
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResult)
	db.On("Collection", "reports").Return(conn)

	reportDB := databases.NewReportDatabase(db)
	report, err := reportDB.FindOne(context.TODO(), bson.M{})

	assert.Nil(t, report)
	assert.EqualError(t, err, "mocked-error")
}

func TestReportDatabaseFindPaginated(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}
	cursor := &mocksdb.CursorHelper{}

	cursor.On("All", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(1).(*[]models.Report)
		*arg = []models.Report{{Title: "First"}, {Title: "Second"}}
	})
	conn.On("Find", mock.Anything, bson.M{}, mock.Anything).Return(cursor, nil)
	db.On("Collection", "reports").Return(conn)

	reportDB := databases.NewReportDatabase(db)
	reports, err := reportDB.FindPaginated(context.TODO(), bson.M{}, 10, 0)

	assert.NoError(t, err)
	assert.Len(t, reports, 2)
}

func TestReportDatabaseUpdateOne(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}

	conn.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil)
	db.On("Collection", "reports").Return(conn)

	reportDB := databases.NewReportDatabase(db)
	matched, err := reportDB.UpdateOne(context.TODO(), bson.M{}, bson.M{"$set": bson.M{"status": models.StatusClosed}})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), matched)
}

func TestUserDatabaseFindOne(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}
	singleResult := &mocksdb.SingleResultHelper{}

	singleResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.User)
		(*arg).Username = "ada"
	})
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResult)
	db.On("Collection", "users").Return(conn)

	userDB := databases.NewUserDatabase(db)
	user, err := userDB.FindOne(context.TODO(), bson.M{"username": "ada"})

	assert.NoError(t, err)
	assert.Equal(t, "ada", user.Username)
}
