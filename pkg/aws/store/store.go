package store

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

const idKey = "id"

// Profile is a player record. ExpoPushToken is nil for players that never
// registered a device.
type Profile struct {
	Id            string  `dynamodbav:"id"`
	Username      string  `dynamodbav:"username"`
	Email         string  `dynamodbav:"email"`
	ExpoPushToken *string `dynamodbav:"expoPushToken"`
	Tokens        int     `dynamodbav:"tokens"`
	Level         int     `dynamodbav:"level"`
	Xp            int     `dynamodbav:"xp"`
	Tier          string  `dynamodbav:"tier"`
}

// Duel is a challenge record between two players. Read-only from the
// handlers' perspective.
type Duel struct {
	Id           string `dynamodbav:"id"`
	ChallengerId string `dynamodbav:"challenger_id"`
	OpponentId   string `dynamodbav:"opponent_id"`
	Word         string `dynamodbav:"word"`
	Gamemode     string `dynamodbav:"gamemode"`
}

// Ensure Client implements ClientIFace
var _ ClientIFace = (*Client)(nil)

type ClientIFace interface {
	Connect() error
	ConnectWithSession(awsSession *session.Session)
	GetSession() *session.Session
	GetProfile(table string, id string) (*Profile, error)
	GetDuel(table string, id string) (*Duel, error)
}

type Client struct {
	cfg      *aws.Config
	dbClient dynamodbiface.DynamoDBAPI
	session  *session.Session
}

func New() *Client {
	cfg := aws.NewConfig()
	return &Client{
		cfg: cfg,
	}
}

func (c *Client) Connect() error {
	awsSession, err := session.NewSession(c.cfg)
	if err != nil {
		return err
	}
	c.ConnectWithSession(awsSession)
	return nil
}

func (c *Client) ConnectWithSession(awsSession *session.Session) {
	c.session = awsSession
	c.dbClient = dynamodb.New(c.session, c.cfg)
}

func (c *Client) GetSession() *session.Session {
	return c.session
}

// GetProfile looks up a profile by id. Returns (nil, nil) when no record
// exists.
func (c *Client) GetProfile(table string, id string) (*Profile, error) {
	item, err := c.getItem(table, id)
	if err != nil || item == nil {
		return nil, err
	}

	profile := new(Profile)
	if err := dynamodbattribute.UnmarshalMap(item, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetDuel looks up a duel by id. Returns (nil, nil) when no record exists.
func (c *Client) GetDuel(table string, id string) (*Duel, error) {
	item, err := c.getItem(table, id)
	if err != nil || item == nil {
		return nil, err
	}

	duel := new(Duel)
	if err := dynamodbattribute.UnmarshalMap(item, duel); err != nil {
		return nil, err
	}
	return duel, nil
}

func (c *Client) getItem(table string, id string) (map[string]*dynamodb.AttributeValue, error) {
	req := &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]*dynamodb.AttributeValue{
			idKey: {S: aws.String(id)},
		},
	}

	out, err := c.dbClient.GetItem(req)
	if err != nil {
		return nil, err
	} else if len(out.Item) == 0 {
		return nil, nil
	}
	return out.Item, nil
}
