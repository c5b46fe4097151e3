package schedulerRepo

import (
	"context"
	"fmt"
	"time"

	"mentorly/database/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// WithinMentorDay runs fn inside a snapshot transaction. The first write of
// every booking transaction bumps the mentor/day document in booking_locks,
// so two transactions for the same mentor and date always write-conflict.
// The driver aborts the loser and replays it once the winner commits, and
// the replay then sees the committed appointment.
func (repo *MongoSchedulerRepo) WithinMentorDay(ctx context.Context, mentorID, date string, fn func(tx repository.LedgerTx) error) error {
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	sess, err := repo.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	lockKey := mentorID + "|" + date
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		_, err := repo.lockColl.UpdateOne(sc,
			bson.M{"_id": lockKey},
			bson.M{
				"$inc": bson.M{"version": 1},
				"$set": bson.M{"mentor_id": mentorID, "date": date, "updated_at": time.Now()},
			},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return nil, fmt.Errorf("claim mentor day %s: %w", lockKey, err)
		}
		return nil, fn(&mongoLedgerTx{repo: repo, sc: sc})
	}, txnOpts)
	if err != nil {
		return err
	}
	return nil
}
