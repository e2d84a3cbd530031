package m_store

import "cloud.google.com/go/spanner"

func InsertOrUpdateMutation(storeID, name string) *spanner.Mutation {
	return spanner.InsertOrUpdate(TableName, []string{ColStoreID, ColName}, []interface{}{storeID, name})
}
