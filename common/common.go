package common

import (
	"github.com/HermawanSutanto/sertifikat-lokal2/type/shared"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

var Config *shared.Config
var Gorm *gorm.DB
var Mongo *mongo.Database
