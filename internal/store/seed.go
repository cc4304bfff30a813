package store

import (
	"github.com/shrimpsizemoose/klassrum/internal/models"
)

// SeedTopics is the fixed catalog: 14 topics across 3 modules. IDs are
// pre-assigned and stable across reseeds.
var SeedTopics = []models.Topic{
	{ID: 1, ModuleName: "Operating Systems", TopicName: "Processes and Threads"},
	{ID: 2, ModuleName: "Operating Systems", TopicName: "CPU Scheduling"},
	{ID: 3, ModuleName: "Operating Systems", TopicName: "Memory Management"},
	{ID: 4, ModuleName: "Operating Systems", TopicName: "Deadlocks"},
	{ID: 5, ModuleName: "Operating Systems", TopicName: "File Systems"},
	{ID: 6, ModuleName: "DBMS", TopicName: "ER Model"},
	{ID: 7, ModuleName: "DBMS", TopicName: "Relational Algebra"},
	{ID: 8, ModuleName: "DBMS", TopicName: "SQL and Joins"},
	{ID: 9, ModuleName: "DBMS", TopicName: "Normalization"},
	{ID: 10, ModuleName: "DBMS", TopicName: "Transactions and Concurrency"},
	{ID: 11, ModuleName: "Computer Networks", TopicName: "OSI and TCP/IP Models"},
	{ID: 12, ModuleName: "Computer Networks", TopicName: "IP Addressing and Routing"},
	{ID: 13, ModuleName: "Computer Networks", TopicName: "Transport Layer"},
	{ID: 14, ModuleName: "Computer Networks", TopicName: "Application Layer Protocols"},
}
